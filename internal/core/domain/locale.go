package domain

const (
	// LocaleEnglish is the default message locale.
	LocaleEnglish = "en"
	// LocaleVietnamese is the Vietnamese message locale.
	LocaleVietnamese = "vi"
)

// Catalog holds the user-facing failure texts of one locale.
type Catalog struct {
	Generic     string
	Timeout     string
	UnknownHost string
	Connection  string
	NoSession   string
	Today       string
	Yesterday   string
	Tomorrow    string
}

var catalogs = map[string]Catalog{
	LocaleEnglish: {
		Generic:     "Something went wrong. Please try again later.",
		Timeout:     "The connection timed out. Check your network and try again.",
		UnknownHost: "Cannot reach the server. Check your network connection.",
		Connection:  "Network error. Please try again later.",
		NoSession:   "You are not signed in.",
		Today:       "Today",
		Yesterday:   "Yesterday",
		Tomorrow:    "Tomorrow",
	},
	LocaleVietnamese: {
		Generic:     "Đã xảy ra lỗi. Vui lòng thử lại sau.",
		Timeout:     "Kết nối quá thời gian. Vui lòng kiểm tra kết nối mạng và thử lại.",
		UnknownHost: "Không thể kết nối đến server. Vui lòng kiểm tra kết nối mạng.",
		Connection:  "Lỗi kết nối mạng. Vui lòng thử lại sau.",
		NoSession:   "Bạn chưa đăng nhập.",
		Today:       "Hôm nay",
		Yesterday:   "Hôm qua",
		Tomorrow:    "Ngày mai",
	},
}

// MessagesFor returns the catalog for locale, falling back to English.
func MessagesFor(locale string) Catalog {
	if c, ok := catalogs[locale]; ok {
		return c
	}
	return catalogs[LocaleEnglish]
}
