package engine

import "github.com/nodai-oss/randgram/grammar"

// Context is the per-stack-entry metadata: depth (count of identifier
// expansions taken to reach this node) and breadth (sibling index
// within its parent composite). depth is the only field the engine
// currently reads; breadth is tracked for a future weighting extension
// but has no effect on output today.
type Context struct {
	Depth   int
	Breadth int
}

// frame is a single work-stack entry: context, the previous and
// current enclosing rules, and the expression to process next.
// currentRule is the innermost enclosing rule; previousRule is the
// rule the engine was in before the most recent Ident expansion,
// consulted only by the blacklist loop-avoidance branch of Ident
// expansion.
type frame struct {
	ctx          Context
	previousRule *grammar.Rule
	currentRule  *grammar.Rule
	expr         *grammar.Expression
}
