/*
Package config manages the options of a minires run.

	            +-------------+
	            |   Options   |
	            | (one run)   |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   JSON   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
  - Holds the markers, directories and file names a run works with
  - Loads them from an optional config file
  - Validates them before any file is touched

🔄 Flow:
  1. The CLI loads a config file if one is given
  2. Flags that were set explicitly override file values
  3. Validate(mode) reports the first missing option as errs.ErrConfiguration

🔍 Example:

	opts, err := config.Load(ctx, storage.NewOS(), "minires.hcl")
	if err != nil {
		return err
	}
	if err := opts.Validate(config.ModeRename); err != nil {
		return err
	}
*/
package config
