package style

// Palette used by the default sheet.
const (
	ColorDark  = "#222"
	ColorDark2 = "#666"
	ColorGray  = "#e3e3e3"
	ColorWhite = "#fff"
	ColorText  = "#555"
)

// Sheet maps a style token to the properties it declares.
type Sheet map[string]Style

// DefaultSheet is the token set used by the invoice document.
var DefaultSheet = Sheet{
	"dark":    {Color: ColorDark},
	"white":   {Color: ColorWhite},
	"bg-dark": {BackgroundColor: ColorDark2},
	"bg-gray": {BackgroundColor: ColorGray},
	"flex":    {Display: "flex", FlexDirection: "row", FlexWrap: "nowrap"},
	"w-auto":  {Flex: "1", PaddingRight: "8px"},
	"ml-30":   {Flex: "1"},
	"w-100":   {Width: "100%"},
	"w-50":    {Width: "50%"},
	"w-55":    {Width: "55%"},
	"w-45":    {Width: "45%"},
	"w-60":    {Width: "60%"},
	"w-40":    {Width: "40%"},
	"w-48":    {Width: "48%"},
	"w-17":    {Width: "17%"},
	"w-18":    {Width: "18%"},
	"row":     {BorderBottom: "1px solid " + ColorGray},
	"mr-4":    {MarginRight: "4px"},
	"mt-100":  {MarginTop: "100px"},
	"mt-40":   {MarginTop: "40px"},
	"mt-30":   {MarginTop: "30px"},
	"mt-20":   {MarginTop: "20px"},
	"mt-10":   {MarginTop: "10px"},
	"mb-5":    {MarginBottom: "5px"},
	"p-4-8":   {Padding: "4px 8px"},
	"p-5":     {Padding: "5px"},
	"pb-10":   {PaddingBottom: "10px"},
	"right":   {TextAlign: "right"},
	"center":  {TextAlign: "center"},
	"bold":    {FontWeight: "bold"},
	"fs-10":   {FontSize: "10px"},
	"fs-20":   {FontSize: "20px"},
	"fs-45":   {FontSize: "45px"},
	"page": {
		FontFamily: "Noto Sans TC",
		FontSize:   "10px",
		Color:      ColorText,
		Padding:    "40px 35px",
		LineHeight: "1.2",
	},
	"span":             {Padding: "4px 12px 4px 0"},
	"logo":             {Display: "block"},
	"lh-10":            {LineHeight: "1.2"},
	"pl-4":             {Padding: "4px"},
	"heading":          {TextAlign: "center", MarginTop: "20px"},
	"red":              {Color: "#f00"},
	"alignItemsCenter": {AlignItems: "center"},
}
