package schema

import "strings"

var abbreviations = map[string]string{
	// nouns
	"nm": "name", "dt": "date", "no": "number", "num": "number", "cd": "code",
	"desc": "description", "amt": "amount", "cnt": "count", "qty": "quantity",
	"addr": "address", "tel": "phone", "ph": "phone", "mob": "mobile",
	"biz": "business", "pwd": "password", "passwd": "password", "pw": "password",
	"img": "image", "zip": "zipcode", "msg": "message", "txt": "text",
	"doc": "document", "usr": "user", "emp": "employee", "cust": "customer",
	"dept": "department", "grp": "group", "cat": "category", "org": "organization",
	"loc": "location", "lat": "latitude", "lng": "longitude", "lon": "longitude",
	"bal": "balance", "calc": "calculation", "rslt": "result", "ref": "reference",
	"std": "standard", "avg": "average", "pct": "percent", "src": "source",
	"sys": "system", "acct": "account", "txn": "transaction", "inv": "invoice",

	// verbs and status
	"reg": "registered", "mod": "modified", "del": "deleted", "cre": "created",
	"upd": "updated", "yn": "yesno", "stat": "status", "sts": "status",
	"typ": "type", "val": "value", "ord": "order", "seq": "sequence",
	"idx": "index", "auth": "authority", "flg": "flag", "is": "yesno",
}

// meaningRule tags a column whose comment mentions any of Keywords.
type meaningRule struct {
	Keywords []string
	Meaning  string
}

// meaningRules are checked against the column comment in order.
var meaningRules = []meaningRule{
	{Keywords: []string{"mobile", "phone", "telephone", "contact number"}, Meaning: "phone"},
	{Keywords: []string{"email", "e-mail", "mail"}, Meaning: "email"},
	{Keywords: []string{"address", "residence"}, Meaning: "address"},
	{Keywords: []string{"zip", "postal"}, Meaning: "zipcode"},
	{Keywords: []string{"name"}, Meaning: "name"},
	{Keywords: []string{"user_id", "login"}, Meaning: "id"},
	{Keywords: []string{"password", "passphrase"}, Meaning: "password"},
	{Keywords: []string{"title", "subject"}, Meaning: "title"},
	{Keywords: []string{"desc", "content", "remark"}, Meaning: "description"},
	{Keywords: []string{"date", "time"}, Meaning: "date"},
	{Keywords: []string{"price", "cost", "amount"}, Meaning: "price"},
	{Keywords: []string{"count", "qty", "quantity"}, Meaning: "count"},
	{Keywords: []string{"flag", "yes/no"}, Meaning: "yesno"},
	{Keywords: []string{"country", "nation"}, Meaning: "country"},
	{Keywords: []string{"city"}, Meaning: "city"},
}

// AnalyzeMeaning guesses what a column holds. A comment keyword wins;
// otherwise the name is split on underscores and abbreviations are expanded.
func AnalyzeMeaning(colName, comment string) string {
	c := strings.ToLower(comment)
	for _, r := range meaningRules {
		for _, k := range r.Keywords {
			if strings.Contains(c, k) {
				return r.Meaning
			}
		}
	}

	parts := strings.Split(strings.ToLower(colName), "_")
	for i, part := range parts {
		if full, ok := abbreviations[part]; ok {
			parts[i] = full
		}
	}
	return strings.Join(parts, " ")
}
