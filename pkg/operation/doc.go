/*
Package operation implements the two ways minires rewrites a page.

	         +-------------+
	         |    Page     |
	         | (line scan) |
	         +------+------+
	                |
	        +-------+-------+
	        |               |
	+-------+-----+  +------+------+
	|   minify    |  |   rename    |
	|  (bundle)   |  | (copy+tag)  |
	+-------------+  +-------------+

🎯 Purpose:
  - Finds the managed region of a page between the start and end markers
  - In minify mode, replaces the region with one stylesheet tag and one script
    tag and writes the two bundles they point at
  - In rename mode, copies every referenced resource to a version-tagged name
    and points the reference at the copy

🔄 Flow:
  1. New validates the options for the mode before any file is touched
  2. The page is scanned line by line through a scan.LineHandler
  3. The rewritten page is written to the output file
  4. In minify mode the css bundle, then the js bundle, are generated

⚠️ Policies:
  - A missing page, or a missing file a bundle needs, is errs.ErrNotFound
  - A missing file in rename mode leaves the reference untouched
  - Filesystem failures are errs.ErrIO
  - Minifier diagnostics are reported, never fatal
  - Nothing written before a failure is cleaned up

🔍 Example:

	op, err := operation.New(config.ModeRename, operation.Options{
		Config: opts,
		Files:  storage.NewOS(),
	})
	if err != nil {
		return err
	}
	err = operation.NewRunner(&logger).Run(ctx, op)
*/
package operation
