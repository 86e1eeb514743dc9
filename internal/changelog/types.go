package changelog

// Commit is a single history record: an opaque hash and the subject line of
// its message. Commits are never mutated after they are read from history.
type Commit struct {
	Hash    string
	Message string
}

// CommitType is a conventional commit type such as "feat" or "fix".
type CommitType string

// Conventional commit types recognized by the parser.
const (
	TypeFeat     CommitType = "feat"
	TypeFix      CommitType = "fix"
	TypeDocs     CommitType = "docs"
	TypeStyle    CommitType = "style"
	TypeRefactor CommitType = "refactor"
	TypePerf     CommitType = "perf"
	TypeTest     CommitType = "test"
	TypeChore    CommitType = "chore"
	TypeBuild    CommitType = "build"
	TypeCI       CommitType = "ci"
	TypeRevert   CommitType = "revert"
)

// ParsedCommit is the result of matching a commit message against the
// conventional commit grammar. Scope is kept for debugging only and never
// rendered.
type ParsedCommit struct {
	Type        CommitType
	Scope       string
	Description string
}

// Category is the human-facing section name a change is filed under.
type Category string

// Changelog categories.
const (
	CategoryAdded         Category = "Added"
	CategoryChanged       Category = "Changed"
	CategoryFixed         Category = "Fixed"
	CategoryDocumentation Category = "Documentation"
	CategoryPerformance   Category = "Performance"
	CategoryTesting       Category = "Testing"
	CategoryBuild         Category = "Build"
	CategoryMaintenance   Category = "Maintenance"
	CategoryReverted      Category = "Reverted"
	CategoryOther         Category = "Other"
)

// categoryTable is the single source of truth for rendering order and for
// the type -> category mapping. Order here is the order sections appear in
// every rendered document.
var categoryTable = []struct {
	category Category
	types    []CommitType
}{
	{CategoryAdded, []CommitType{TypeFeat}},
	{CategoryChanged, []CommitType{TypeStyle, TypeRefactor}},
	{CategoryFixed, []CommitType{TypeFix}},
	{CategoryDocumentation, []CommitType{TypeDocs}},
	{CategoryPerformance, []CommitType{TypePerf}},
	{CategoryTesting, []CommitType{TypeTest}},
	{CategoryBuild, []CommitType{TypeBuild, TypeCI}},
	{CategoryMaintenance, []CommitType{TypeChore}},
	{CategoryReverted, []CommitType{TypeRevert}},
	{CategoryOther, nil},
}

// Categories returns every category in rendering order.
func Categories() []Category {
	out := make([]Category, len(categoryTable))
	for i, row := range categoryTable {
		out[i] = row.category
	}
	return out
}

// CategoryFor returns the category a commit type is filed under.
// Unknown types land in Other.
func CategoryFor(t CommitType) Category {
	for _, row := range categoryTable {
		for _, candidate := range row.types {
			if candidate == t {
				return row.category
			}
		}
	}
	return CategoryOther
}

// CommitTypes returns the recognized conventional commit types in the order
// the parser alternates over them.
func CommitTypes() []CommitType {
	return []CommitType{
		TypeFeat, TypeFix, TypeDocs, TypeStyle, TypeRefactor, TypePerf,
		TypeTest, TypeChore, TypeBuild, TypeCI, TypeRevert,
	}
}

// Section holds the ordered entries of one category.
type Section struct {
	Category Category
	Entries  []string
}

// Sections is an ordered category table. Sections built with NewSections
// contain every category, empty or not, in rendering order.
type Sections []Section

// NewSections returns a table with one empty section per category.
func NewSections() Sections {
	categories := Categories()
	sections := make(Sections, len(categories))
	for i, c := range categories {
		sections[i] = Section{Category: c}
	}
	return sections
}

// Add appends an entry to the section for category c. Entries for a
// category missing from the table are dropped.
func (s Sections) Add(c Category, entry string) {
	for i := range s {
		if s[i].Category == c {
			s[i].Entries = append(s[i].Entries, entry)
			return
		}
	}
}

// Get returns the entries filed under category c.
func (s Sections) Get(c Category) []string {
	for _, section := range s {
		if section.Category == c {
			return section.Entries
		}
	}
	return nil
}

// IsEmpty returns true if no section has any entry.
func (s Sections) IsEmpty() bool {
	return s.Count() == 0
}

// Count returns the total number of entries across all sections.
func (s Sections) Count() int {
	n := 0
	for _, section := range s {
		n += len(section.Entries)
	}
	return n
}

// NonEmpty returns the sections that have at least one entry, in order.
func (s Sections) NonEmpty() Sections {
	var out Sections
	for _, section := range s {
		if len(section.Entries) > 0 {
			out = append(out, section)
		}
	}
	return out
}
