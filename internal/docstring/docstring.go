// Package docstring parses the meadoc structured docstring dialect: a short
// description, an optional long description after a blank line, and named
// sections (attributes, arguments, methods, returns, raises, usage) holding
// backtick-delimited items with indented descriptions.
package docstring

import "strings"

// Section identifies a recognized docstring section. The zero value means
// "no section open".
type Section int

const (
	SectionNone Section = iota
	SectionAttributes
	SectionArguments
	SectionMethods
	SectionReturns
	SectionRaises
	SectionUsage
)

// sectionFromHeader maps a lowercased, colon-stripped header line to its
// section. Unknown names do not open a section.
func sectionFromHeader(name string) (Section, bool) {
	switch name {
	case "attributes":
		return SectionAttributes, true
	case "arguments":
		return SectionArguments, true
	case "methods":
		return SectionMethods, true
	case "returns":
		return SectionReturns, true
	case "raises":
		return SectionRaises, true
	case "usage":
		return SectionUsage, true
	}
	return SectionNone, false
}

// Item is one entry of a docstring section: the text inside the first
// backtick pair and the description that follows it.
type Item struct {
	TypeAnnotation string
	Description    string
}

// Parsed is the structured form of one docstring.
type Parsed struct {
	ShortDescription   string
	LongDescription    string
	Attributes         []Item
	Arguments          []Item
	Methods            []Item
	ReturnsType        string
	ReturnsDescription string
	Raises             map[string]string
	Usage              string
	IsMalformed        bool
}

type scanState int

const (
	stateShortDesc scanState = iota
	stateLongDesc
	stateSection
)

// Parse runs the line-oriented grammar over one docstring. An absent or
// blank docstring short-circuits to an all-empty record with IsMalformed
// set; any non-blank text parses without error.
func Parse(text string) Parsed {
	parsed := Parsed{Raises: map[string]string{}}

	if strings.TrimSpace(text) == "" {
		parsed.IsMalformed = true
		return parsed
	}

	var shortDesc, longDesc, usage []string
	items := map[Section][]Item{}

	state := stateShortDesc
	section := SectionNone
	// last points at the most recently started item in the open section.
	last := func() *Item {
		list := items[section]
		if len(list) == 0 {
			return nil
		}
		return &list[len(list)-1]
	}

	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)

		if stripped == "" {
			if state == stateShortDesc {
				state = stateLongDesc
			}
			continue
		}

		// A recognized trailing-colon header opens a section from any state;
		// inside a section body other colon lines are ordinary text.
		if strings.HasSuffix(stripped, ":") {
			name := strings.ToLower(strings.TrimSuffix(stripped, ":"))
			if next, ok := sectionFromHeader(name); ok {
				section = next
				state = stateSection
				continue
			}
		}

		switch state {
		case stateShortDesc:
			shortDesc = append(shortDesc, stripped)
		case stateLongDesc:
			longDesc = append(longDesc, line)
		case stateSection:
			if section == SectionUsage {
				usage = append(usage, line)
				continue
			}
			if annotation, rest, ok := splitItem(stripped); ok {
				items[section] = append(items[section], Item{
					TypeAnnotation: annotation,
					Description:    rest,
				})
				continue
			}
			if item := last(); item != nil {
				item.Description = strings.TrimSpace(item.Description + " " + stripped)
			}
		}
	}

	parsed.ShortDescription = strings.Join(shortDesc, " ")
	parsed.LongDescription = strings.TrimSpace(strings.Join(longDesc, "\n"))
	parsed.Attributes = items[SectionAttributes]
	parsed.Arguments = items[SectionArguments]
	parsed.Methods = items[SectionMethods]
	if len(usage) > 0 {
		parsed.Usage = strings.Join(usage, "\n")
	}

	if returns := items[SectionReturns]; len(returns) > 0 {
		parsed.ReturnsType = strings.TrimPrefix(returns[0].TypeAnnotation, "returns: ")
		parsed.ReturnsDescription = returns[0].Description
	}
	for _, item := range items[SectionRaises] {
		parsed.Raises[item.TypeAnnotation] = item.Description
	}

	return parsed
}

// splitItem matches a section item line: a backtick, non-empty content, a
// closing backtick, then free text.
func splitItem(stripped string) (annotation, rest string, ok bool) {
	if !strings.HasPrefix(stripped, "`") {
		return "", "", false
	}
	closing := strings.Index(stripped[1:], "`")
	if closing <= 0 {
		return "", "", false
	}
	annotation = stripped[1 : closing+1]
	rest = strings.TrimSpace(stripped[closing+2:])
	return annotation, rest, true
}
