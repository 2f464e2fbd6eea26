/*
Package operation implements the read, transform, and write flows shared by the CLI and the HTTP service.

	+-------------+      +-------------+      +-------------+
	|    Store    | ---> |    text     | ---> |    Store    |
	|   (Read)    |      |  (Replace)  |      |   (Write)   |
	+-------------+      +-------------+      +-------------+

🔄 Flow:
1. A front end builds an Operation from parsed input
2. A Runner executes it on the caller's goroutine, refusing to start once the context is done
3. The Operation reads through the Store, transforms with a TextReplacer, writes back
4. The front end reports the Outcome

⚡ Guarantees:
- A failed read never leads to a write
- Store errors keep their Kind through wrapping, so callers can use store.KindOf
- Operations hold no state beyond their own inputs and outcome

🔍 Example:

	op := operation.NewReplaceOperation(opts, "in.txt", "out.txt", text.ReplacementRule{FromText: "the", ToText: "a"})
	if err := operation.NewRunner(&logger).Run(ctx, op); err != nil {
		return err
	}
	fmt.Println(op.Outcome().Replacements)
*/
package operation
