// Package config loads the settings of a recolor run.
//
// Settings come from three places, highest precedence first:
//   - command-line values passed to Resolve as Flags
//   - a JSON file read by Load
//   - the IMAGE_RECOLOR_LOG_LEVEL environment variable, for the log level
//     only
//
// Resolve fills anything still empty with defaults: one worker, a concurrency
// cap of GOMAXPROCS, JPEG quality 95 and a destination named
// <name>-purple<ext> next to the source. Validate reports every unusable
// setting at once.
//
// # File Format
//
//	{
//	  "source": "in/flowers.jpg",
//	  "destination": "out/flowers.jpg",
//	  "workers": 6,
//	  "max_concurrent": 4,
//	  "keep_row_gap": false,
//	  "jpeg_quality": 95,
//	  "log_level": "debug"
//	}
package config
