package bencode

import (
	"fmt"
	"strings"
)

// printMaxItems caps how many list items or bytes String prints.
const printMaxItems = 100

func (i Integer) String() string    { return format(i, 0) }
func (s TextString) String() string { return format(s, 0) }
func (b ByteString) String() string { return format(b, 0) }
func (l List) String() string       { return format(l, 0) }
func (d Dict) String() string       { return format(d, 0) }

// format renders v as an indented debug tree. Dict entries are indented two
// spaces deeper than the dict that holds them.
func format(v Value, indent int) string {
	switch v := v.(type) {
	case Integer:
		return fmt.Sprintf("Integer(%d)", int64(v))

	case TextString:
		return fmt.Sprintf("TextString(%d)(%q)", len(v), string(v))

	case ByteString:
		items := make([]string, 0, printMaxItems)
		for _, b := range v[:clip(len(v))] {
			items = append(items, fmt.Sprintf("0x%x", b))
		}
		return fmt.Sprintf("ByteString(%d)(%s)", len(v), strings.Join(items, ", "))

	case List:
		items := make([]string, 0, printMaxItems)
		for _, item := range v[:clip(len(v))] {
			items = append(items, format(item, indent))
		}
		return "List[" + strings.Join(items, ", ") + "]"

	case Dict:
		pad := strings.Repeat(" ", indent+2)
		lines := make([]string, 0, len(v))
		for _, k := range v.Keys() {
			lines = append(lines, fmt.Sprintf("%s%q: %s", pad, k, format(v[k], indent+2)))
		}
		return fmt.Sprintf("Dict(%d)(\n%s\n%s)", len(v), strings.Join(lines, "\n"), strings.Repeat(" ", indent))
	}
	return "<nil>"
}

func clip(n int) int {
	if n > printMaxItems {
		return printMaxItems
	}
	return n
}
