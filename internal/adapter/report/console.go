package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/guillermoBallester/cyphercheck/internal/core/domain"
	"github.com/guillermoBallester/cyphercheck/internal/core/port"
)

const ruleWidth = 80

// Console prints a human-readable progress log and final summary.
type Console struct {
	w    io.Writer
	st   styles
	rule string
}

func NewConsole(w io.Writer) *Console {
	return &Console{
		w:    w,
		st:   newStyles(w),
		rule: strings.Repeat("=", ruleWidth),
	}
}

func (c *Console) write(format string, args ...any) {
	_, _ = fmt.Fprintf(c.w, format, args...)
}

var _ port.Reporter = (*Console)(nil)

func (c *Console) Start(info port.RunInfo) {
	c.write("Found %d Cypher files to validate\n", info.FileCount)
	if info.Target != "" {
		c.write("Neo4j: %s  db=%s\n", info.Target, info.Database)
	}
	c.write("Validation method: %s\n", info.Method)
}

func (c *Console) FileValidated(res domain.FileResult) {
	c.write("\n%s\n", c.st.dim.Render(c.rule))
	c.write("Validating: %s\n", c.st.title.Render(res.FileName))
	c.write("%s\n", c.st.dim.Render(c.rule))

	if res.Valid {
		c.write("%s\n", c.st.pass.Render("✅ PASS (KG Valid Query = True)"))
	} else {
		c.write("%s\n", c.st.fail.Render("❌ FAIL (KG Valid Query = False)"))
	}

	if res.Bypassed {
		c.write("  %s\n", c.st.dim.Render(domain.CheckMethodBypass))
	}

	c.write("  Syntax:     ok=%t\n", res.Syntax.OK)
	if res.Syntax.OK {
		c.write("  Schema:     score=%s ok=%t\n", formatScore(res.Schema.Score), res.Schema.OK)
		c.write("  Properties: score=%s ok=%t\n", formatScore(res.Properties.Score), res.Properties.OK)
	} else {
		c.write("  Schema:     %s\n", c.st.dim.Render("skipped (syntax failed)"))
		c.write("  Properties: %s\n", c.st.dim.Render("skipped (syntax failed)"))
		if msg, ok := res.Syntax.Metadata["error"].(string); ok && msg != "" {
			c.write("  Error: %s\n", c.st.fail.Render(msg))
		}
	}

	if notes, ok := res.Syntax.Metadata["notifications"].([]domain.Notification); ok {
		for _, n := range notes {
			c.write("  %s %s\n", c.st.warn.Render("warning:"), n.Title)
		}
	}
}

func (c *Console) Finish(sum domain.Summary) {
	c.write("\n%s\n", c.st.dim.Render(c.rule))
	c.write("%s\n", c.st.header.Render("VALIDATION SUMMARY"))
	c.write("%s\n", c.st.dim.Render(c.rule))

	for _, o := range sum.Outcomes {
		if o.Valid {
			c.write("%s: %s\n", c.st.pass.Render("✅ PASS"), o.FileName)
		} else {
			c.write("%s: %s\n", c.st.fail.Render("❌ FAIL"), o.FileName)
		}
	}

	c.write("\nTotal: %d/%d files passed\n", sum.Passed, sum.Total)
}

func formatScore(s *float64) string {
	if s == nil {
		return "none"
	}
	return fmt.Sprintf("%.1f", *s)
}
