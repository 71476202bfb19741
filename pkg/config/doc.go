/*
Package config loads rule sets and run settings for reword.

	            +-------------+
	            |   Config    |
	            | (rules,io)  |
	            +------+------+
	                   |
	   +---------------+---------------+
	   |               |               |
	+--+---+       +---+---+       +---+--+
	| YAML |       |  HCL  |       | JSON |
	+------+       +-------+       +------+

🎯 Purpose:
- Reads an ordered list of substitution rules from a file
- Carries include/exclude globs, output location and concurrency
- Fills in defaults and rejects malformed globs

🔄 Flow:
1. GetParser picks a parser by file extension
2. The parser decodes strictly, unknown fields are errors
3. Validate normalises paths and applies defaults
4. RuleSet hands the rules to the engine in file order

🔍 Example:

	cfg, err := config.Load(ctx, "rules.yaml")
	if err != nil {
		return err
	}
	run, err := processor.ProcessAll(ctx, files, cfg.RuleSet())

A YAML rule file:

	rules:
	  - search: user*
	    replacement: account
	  - search: "*log*"
	    replacement: LOG
	    case_sensitive: true
	exclude:
	  - "archive/**"
*/
package config
