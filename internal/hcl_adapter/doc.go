// Package hcl_adapter implements config.Loader for HCL files.
//
// A configuration file looks like:
//
//	input      = "${env.DATA_DIR}/orbits.txt"
//	log_level  = "debug"
//	log_format = "json"
//	workers    = 8
//
//	transfer {
//	  from = "YOU"
//	  to   = "SAN"
//	}
//
//	healthcheck {
//	  port = 8080
//	}
//
// Expressions are evaluated with a single variable, env, an object holding
// the process environment. A relative input path is resolved against the
// directory of the configuration file.
package hcl_adapter
