package engine

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"ndmo-quality/internal/schema"
)

const (
	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02 15:04:05"
	defaultMaxInt  = 50000
	shortText      = 20
)

// Faker surnames such as O'Hara carry characters an address cannot hold.
var emailJunkRe = regexp.MustCompile(`[^a-z0-9._%+@-]`)

// Value generates one value for c. allowed_values win; otherwise the value
// follows the column type, its constraints and the meaning guessed from its
// name and description. row is the zero-based row number, used for
// sequential keys.
func (g *Generator) Value(c *schema.Column, row int) any {
	cons := c.Constraints
	if len(cons.AllowedValues) > 0 {
		return cons.AllowedValues[g.faker.Rand.Intn(len(cons.AllowedValues))]
	}

	meaning := schema.AnalyzeMeaning(c.Name, c.Description)
	switch c.Type {
	case schema.TypeNumeric:
		return g.number(c, meaning, row)
	case schema.TypeDatetime:
		return g.datetime(cons.Format)
	case schema.TypeBoolean:
		return g.faker.Bool()
	case schema.TypeEmail:
		return g.fit(g.email(), cons)
	case schema.TypePhone:
		return g.phone()
	case schema.TypeIdentifier:
		return g.fit(g.faker.UUID(), cons)
	}
	return g.fit(g.text(c, meaning), cons)
}

func (g *Generator) number(c *schema.Column, meaning string, row int) any {
	cons := c.Constraints
	name := strings.ToLower(c.Name)

	if c.PrimaryKey {
		start := 1
		if cons.MinValue != nil {
			start = int(math.Ceil(*cons.MinValue))
		}
		return start + row
	}

	// Boolean-like column handling
	if strings.Contains(meaning, "yesno") || strings.Contains(name, "active") || strings.Contains(name, "enabled") {
		return g.faker.Rand.Intn(2)
	}
	if strings.Contains(meaning, "year") {
		return 2000 + g.faker.Rand.Intn(26)
	}

	if strings.Contains(meaning, "price") || strings.Contains(meaning, "amount") || strings.Contains(meaning, "balance") {
		lo, hi := 0.99, 99.99
		if cons.MinValue != nil {
			lo = *cons.MinValue
		}
		if cons.MaxValue != nil {
			hi = *cons.MaxValue
		}
		if hi < lo {
			hi = lo
		}
		return g.faker.Price(lo, hi)
	}

	lo, hi := 1.0, float64(defaultMaxInt)
	if cons.MinValue != nil {
		lo = *cons.MinValue
		hi = max(hi, lo)
	}
	if cons.MaxValue != nil {
		hi = *cons.MaxValue
		lo = min(lo, hi)
	}
	if lo != math.Trunc(lo) || hi != math.Trunc(hi) {
		return g.faker.Float64Range(lo, hi)
	}
	return g.faker.Number(int(lo), int(hi))
}

func (g *Generator) datetime(format string) string {
	v := g.faker.DateRange(g.Now.AddDate(-1, 0, 0), g.Now)
	if format == "date" {
		return v.Format(dateLayout)
	}
	return v.Format(datetimeLayout)
}

func (g *Generator) email() string {
	return emailJunkRe.ReplaceAllString(strings.ToLower(g.faker.Email()), "")
}

// phone returns a Saudi mobile number in E.164 form.
func (g *Generator) phone() string {
	return g.faker.Numerify("+9665########")
}

func (g *Generator) text(c *schema.Column, meaning string) string {
	name := strings.ToLower(c.Name)
	isID := strings.HasSuffix(name, "id")
	has := func(terms ...string) bool {
		for _, t := range terms {
			if strings.Contains(meaning, t) || strings.Contains(name, t) {
				return true
			}
		}
		return false
	}

	switch {
	case !isID && has("phone", "mobile"):
		return g.phone()
	case !isID && has("email", "mail"):
		return g.email()
	case has("year"):
		return strconv.Itoa(2000 + g.faker.Rand.Intn(26))
	case c.Constraints.Pattern != "":
		return g.faker.Regex(c.Constraints.Pattern)
	case !isID && has("password"):
		return g.faker.Password(true, true, true, false, false, 12)
	case !isID && has(" by", "owner", "steward", "user"):
		return g.faker.Username()
	case !isID && has("name", "first", "last"):
		return g.faker.Name()
	case !isID && has("address"):
		return g.faker.Street()
	case has("zipcode", "postal"):
		return g.faker.Zip()
	case has("yesno"):
		if g.faker.Bool() {
			return "Y"
		}
		return "N"
	case has("date", "time"):
		return g.datetime(c.Constraints.Format)
	case !isID && has("country"):
		return g.faker.Country()
	case !isID && has("city"):
		return g.faker.City()
	case !isID && has("title", "subject"):
		return g.faker.Sentence(3)
	case !isID && has("description", "content", "comment", "remark", "text"):
		return g.faker.Sentence(10)
	case isID || has("code", "reference"):
		return g.faker.Regex(`[A-Z]{3}[0-9]{5}`)
	}

	if c.Constraints.MaxLength != nil && *c.Constraints.MaxLength < shortText {
		return g.faker.Word()
	}
	return g.faker.Sentence(5)
}

// fit truncates s to max_length and pads it with letters up to min_length.
func (g *Generator) fit(s string, c schema.Constraints) string {
	runes := []rune(s)
	if c.MaxLength != nil && len(runes) > *c.MaxLength {
		runes = runes[:max(*c.MaxLength, 0)]
	}
	if c.MinLength != nil {
		for len(runes) < *c.MinLength {
			runes = append(runes, []rune(g.faker.Letter())...)
		}
	}
	return string(runes)
}
