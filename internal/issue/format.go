package issue

import (
	"fmt"
	"strings"
	"time"
)

// placeholder is one %-escape in a format string.
type placeholder int

const (
	phText placeholder = iota
	phShortID
	phID
	phDescription
	phMilestone
	phCreationDate
	phDueDate
	phTags
)

type formatPart struct {
	kind placeholder
	text string // only for phText
}

// FormatString renders issues for listing. Supported placeholders:
// %i short id, %I full id, %D title, %M milestone, %c creation date,
// %d due date, %T tags, %n newline, %% literal percent. The names
// "simple", "oneline" and "short" select built-in formats.
type FormatString struct {
	parts []formatPart
}

var formatPresets = map[string]string{
	"simple":  "%i %D",
	"oneline": "ID: %i  Date: %c  Tags: %T  Desc: %D",
	"short":   "ID: %i%nDate: %c%nDue Date: %d%nTags: %T%nDescription: %D",
}

// ParseFormat compiles a format string or preset name.
func ParseFormat(value string) (*FormatString, error) {
	if preset, ok := formatPresets[value]; ok {
		value = preset
	}
	var parts []formatPart
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			parts = append(parts, formatPart{kind: phText, text: cur.String()})
			cur.Reset()
		}
	}
	runes := []rune(value)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '%' {
			cur.WriteRune(runes[i])
			continue
		}
		i++
		if i >= len(runes) {
			return nil, fmt.Errorf("premature end of format string, expected placeholder")
		}
		switch runes[i] {
		case '%':
			cur.WriteRune('%')
		case 'n':
			cur.WriteRune('\n')
		case 'i':
			flush()
			parts = append(parts, formatPart{kind: phShortID})
		case 'I':
			flush()
			parts = append(parts, formatPart{kind: phID})
		case 'D':
			flush()
			parts = append(parts, formatPart{kind: phDescription})
		case 'M':
			flush()
			parts = append(parts, formatPart{kind: phMilestone})
		case 'c':
			flush()
			parts = append(parts, formatPart{kind: phCreationDate})
		case 'd':
			flush()
			parts = append(parts, formatPart{kind: phDueDate})
		case 'T':
			flush()
			parts = append(parts, formatPart{kind: phTags})
		default:
			return nil, fmt.Errorf("unexpected format string placeholder %%%c", runes[i])
		}
	}
	flush()
	return &FormatString{parts: parts}, nil
}

// Format renders one issue.
func (f *FormatString) Format(issue *Issue) (string, error) {
	var out strings.Builder
	for _, part := range f.parts {
		switch part.kind {
		case phText:
			out.WriteString(part.text)
		case phShortID:
			out.WriteString(issue.ID().Short())
		case phID:
			out.WriteString(string(issue.ID()))
		case phDescription:
			title, err := issue.Title()
			if err != nil {
				return "", err
			}
			out.WriteString(title)
		case phMilestone:
			milestone, _ := issue.Milestone()
			out.WriteString(milestone)
		case phCreationDate:
			cdate, err := issue.CreationDate()
			if err != nil {
				return "", err
			}
			out.WriteString(cdate.Format(time.RFC3339))
		case phDueDate:
			due, ok, err := issue.DueDate()
			if err != nil {
				return "", err
			}
			if ok {
				out.WriteString(due.Format(time.RFC3339))
			}
		case phTags:
			tags, err := issue.Tags()
			if err != nil {
				return "", err
			}
			out.WriteString(strings.Join(tags, " "))
		}
	}
	return out.String(), nil
}
