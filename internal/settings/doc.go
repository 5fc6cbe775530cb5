// Package settings 进程级配置：从 xconf 加载，构建 logger、Authorizer 和 xtrace 选项。
//
// 配置示例（YAML）：
//
//	log:
//	  level: info
//	  format: json
//	  file: /var/log/app/app.log
//	  rotation:
//	    max_size_mb: 100
//	trace:
//	  auto_generate: true
//	  generator: uuid        # uuid | hex | sonyflake
//	  api_key_header: X-API-Key
//	auth:
//	  require: false
//	  bearer:
//	    - {token: t1, subject: svc-a, scopes: [read]}
//	  api_keys:
//	    - {token: k1, subject: svc-b, scopes: ["*"]}
//	  basic:
//	    - {username: admin, password: pw, subject: admin}
//	  cache:
//	    enabled: true
//	    size: 1024
//	    ttl: 5m
//	body:
//	  max_size: 8388608
//	server:
//	  addr: ":8080"
package settings
