// Package config loads the hinge tool configuration from JSON.
//
// The file uses a flat schema of optional fields:
//
//	{
//	  "fixed_angle": 42.0,
//	  "non_finite_policy": "reject",
//	  "fixtures_path": "",
//	  "units": "deg"
//	}
//
// A relative fixtures_path is taken relative to the config file's
// directory. Command-line flags override values from the file; a relative
// -fixtures flag is taken relative to the working directory.
package config
