// Package config loads yo-yo settings.
//
// Settings come from three layers, each overriding the one before: built-in
// defaults, an optional YAML file, and YOYO_* environment variables. The CLI
// applies its flags on top.
//
//	start_year: 1888
//	end_year: 2010
//	concurrency: 4
//	aliases:
//	  Small Heath: birmingham-city
//	  Newton Heath: manchester-united
package config
