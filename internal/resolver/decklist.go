package resolver

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/vladislavdragonenkov/manabuy/internal/domain"
)

// ParseDecklist разбирает текст декклиста с грамматикой "<qty> <name>"
// по строке. Пустые строки и комментарии (# или //) пропускаются,
// голое имя означает одну копию, хвостовая аннотация сета в скобках
// отбрасывается: "4 Lightning Bolt (2XM)" -> 4x "Lightning Bolt".
func ParseDecklist(text string, prefs domain.PreferenceSet) ([]domain.LineItem, []ParseIssue) {
	var (
		items  []domain.LineItem
		issues []ParseIssue
	)

	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		quantity := 1
		name := line
		if first, rest, found := strings.Cut(line, " "); found {
			if qty, err := strconv.Atoi(first); err == nil {
				if qty <= 0 {
					issues = append(issues, ParseIssue{Line: lineNum, Text: line, Reason: "quantity must be positive"})
					continue
				}
				quantity = qty
				name = rest
			}
		}

		name = stripSetAnnotation(name)
		if name == "" {
			issues = append(issues, ParseIssue{Line: lineNum, Text: line, Reason: "missing card name"})
			continue
		}

		items = append(items, domain.LineItem{
			Ref:         domain.ByName(name),
			Quantity:    quantity,
			Preferences: prefs,
		})
	}

	return items, issues
}

// stripSetAnnotation отрезает хвост "(SET)" и прочие пометки в скобках.
func stripSetAnnotation(name string) string {
	if idx := strings.Index(name, "("); idx >= 0 {
		name = name[:idx]
	}
	return strings.TrimSpace(name)
}
