/*
Package config resolves the settings shared by the replacer CLI and the replacerd service.

	            +-------------+
	            |   Default   |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   JSON   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+-----+----+ +-----+----+ +-----+----+
	      |            |            |
	      +------------+------------+
	                   |
	            +------+------+
	            | Environment |
	            +------+------+
	                   |
	            +------+------+
	            |    Flags    |
	            +-------------+

🔄 Flow:
1. Start from Default()
2. Overlay the optional config file, parsed by extension
3. Overlay REPLACER_ROOT, REPLACER_REPORT, STORE_BACKEND, plus PORT, HOST, ALLOWED_ORIGINS unless LoadStore is used
4. Commands overlay their own flags, then call Validate

HCL files can read the environment through the env object:

	root = "${env.HOME}/replacer/files"
	port = 8080
*/
package config
