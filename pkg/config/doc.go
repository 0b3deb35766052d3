// Package config loads hartool filter configurations.
//
// A configuration file is YAML (JSON is accepted as a YAML subset) with a
// single filters block:
//
//	filters:
//	  include:
//	    domains: ["api.example.com"]
//	  ignore:
//	    extensions: [js, css, png]
//	    urls: ['/^https:\/\/ads\./']
//
// References of the form ${VAR} or ${VAR:-default} are replaced from the
// environment before the YAML is parsed.
package config
