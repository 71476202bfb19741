/*
Package operation runs a batch of substitution rules over a queue of files.

	+-------------+
	|    Queue    |
	|   (ingest)  |
	+------+------+
	       |
	+------+------+
	|  Processor  |
	|  (per file) |
	+------+------+
	       |
	+------+------+
	|     Run     |
	|  (results)  |
	+-------------+

🔄 Flow, per file:
1. Decode the raw bytes (codec)
2. Apply every active rule in order (text)
3. Skip the file if nothing matched
4. Re-encode with the original encoding and BOM
5. Take the next version for the file's identity (version)
6. Park the output behind a blob handle and record a Result

⚡ Runs:
- A run validates the rules before touching any file
- Handles from the previous run are revoked before a new run starts
- Files are processed concurrently; results keep queue order
- One file failing does not stop the others; it is reported as a Failure

🔍 Example:

	p, err := operation.New(operation.Options{
		Tracker: version.NewTracker(),
		Store:   blob.NewStore(),
	})
	run, err := p.ProcessAll(ctx, queue.Files(), rules)
*/
package operation
