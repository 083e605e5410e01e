package domain

// Profile is the fixed identity and vocabulary printed on every document:
// the issuing company, the choice lists and the terms block.
type Profile struct {
	CompanyName    string
	CompanyPhone   string
	CompanyAddress string
	CompanyEmail   string
	Logo           string
	LogoWidth      float64

	Headings    []string
	Projects    []string
	OtherToken  string
	InvoiceFrom []string

	DateLabel       string
	NumberSuffix    string
	BillToLabel     string
	DueDateLabel    string
	QuoteFromLabel  string
	QuoteFromHint   string
	DiscountDefault string
	TermsLabel      string
	Terms           string

	DueDays int
}

// DefaultTerms is the terms and conditions text of the default profile.
const DefaultTerms = `*所有價格均以澳門元(MOP)結算
*訂單以完成定金付款後即生效，定金需支付半數或總額之三分二
*延期或需提早交貨必須得到雙方協商同意
*訂單生效後無法取消，亦不退還定金
*如商品已製作中便無法作出更換
*客製化商品未必與圖片完全相同，所有圖片僅供參考
*凡宴會/商務禮品請客戶自行把握好訂購數量，避免過少或過多，本店概不負責
*如商品破損證實為店家不慎導致，請於收貨後48小時內聯絡店家，超過時間恕不受理
*客戶請將要更換的商品保持完整送回本店，如有使用過的痕跡或異味恕不退換
*所有商品本店會提前給予客戶確認，客戶收貨後不能因顏色、觀感、個人喜好、材質等原因而要求更換/退貨
*某些商品為手工製作，輕微睱疵實屬正常，客戶下單前自行酌量或與客服溝通
*禮意店有限公司保留最終解釋權`

// DefaultProfile returns the profile of the shop the editor was built for.
func DefaultProfile() Profile {
	return Profile{
		CompanyName:     "禮意店有限公司",
		CompanyPhone:    "(+853)68852522",
		CompanyAddress:  "澳門羅神父街35-49號時代工業大廈3樓1室",
		CompanyEmail:    "giftery.mo@gmail.com",
		LogoWidth:       140,
		Headings:        []string{"發票", "收據", "報價單"},
		Projects:        []string{"請選擇", "婚體", "滿月酒", "生日派對", "商務回禮", "其他"},
		OtherToken:      "其他",
		InvoiceFrom:     []string{"阮小姐", "盧先生"},
		DateLabel:       "日期",
		NumberSuffix:    "號碼",
		BillToLabel:     "報價給予",
		DueDateLabel:    "交貨日期",
		QuoteFromLabel:  "報價由",
		QuoteFromHint:   "請輸入報價人",
		DiscountDefault: "Discount (0%)",
		TermsLabel:      "Terms & Conditions",
		Terms:           DefaultTerms,
		DueDays:         DefaultDueDays,
	}
}

// Heading returns the document heading, falling back to the first configured
// heading.
func (p Profile) Heading(inv Invoice) string {
	if inv.Heading != "" {
		return inv.Heading
	}
	if len(p.Headings) > 0 {
		return p.Headings[0]
	}
	return "發票"
}

// Project returns the selected project, falling back to the first entry.
func (p Profile) Project(inv Invoice) string {
	if inv.ClientProject != "" || len(p.Projects) == 0 {
		return inv.ClientProject
	}
	return p.Projects[0]
}
