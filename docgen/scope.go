package docgen

// scope is one level of the render context: the current data placeholder
// row plus the named blocks and materialized result sets visible at that
// nesting depth. Lookups walk from the innermost scope outward, which
// restricts a row template to its own placeholder chain and to globally
// visible blocks, never to a sibling's rows.
type scope struct {
	parent   *scope
	owner    string
	row      Row
	blocks   map[string]string
	results  map[string][]Row
	filename string
}

func newRootScope(row Row) *scope {
	return &scope{row: row}
}

func (s *scope) push(owner string, row Row) *scope {
	return &scope{parent: s, owner: owner, row: row}
}

func (s *scope) root() *scope {
	cur := s
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// inputValue resolves an input column against the action's root row.
func (s *scope) inputValue(column string) (any, bool) {
	root := s.root()
	if root.row == nil {
		return nil, false
	}
	v, ok := root.row[column]
	return v, ok
}

// rowValue resolves a data reference against the named placeholder's
// current row in the scope chain. An empty placeholder name targets the
// innermost placeholder row, the form used inside a row template.
func (s *scope) rowValue(placeholder, column string) (any, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.owner == "" || cur.row == nil {
			continue
		}
		if placeholder == "" || cur.owner == placeholder {
			v, ok := cur.row[column]
			return v, ok
		}
	}
	return nil, false
}

// currentOwner names the innermost placeholder this scope renders under.
func (s *scope) currentOwner() string {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.owner != "" {
			return cur.owner
		}
	}
	return ""
}

// resultSet resolves the materialized result set of a placeholder visible
// from this scope.
func (s *scope) resultSet(placeholder string) ([]Row, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if rows, ok := cur.results[placeholder]; ok {
			return rows, true
		}
	}
	return nil, false
}

// block resolves a fully rendered placeholder block visible from this scope.
func (s *scope) block(placeholder string) (string, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.blocks[placeholder]; ok {
			return v, true
		}
	}
	return "", false
}

func (s *scope) setBlock(name, value string) {
	if s.blocks == nil {
		s.blocks = make(map[string]string)
	}
	s.blocks[name] = value
}

func (s *scope) setResult(name string, rows []Row) {
	if s.results == nil {
		s.results = make(map[string][]Row)
	}
	s.results[name] = rows
}

func (s *scope) fileValue() string {
	return s.root().filename
}

// formulaRow flattens the scope chain into one row for the formula engine,
// inner scopes shadowing outer columns.
func (s *scope) formulaRow() Row {
	var chain []*scope
	for cur := s; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	merged := make(Row)
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].row {
			merged[k] = v
		}
	}
	return merged
}
