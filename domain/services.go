package domain

const (
	ServiceMassage  = "massage"
	ServiceGuasha   = "guasha"
	ServiceCupping  = "cupping"
	ServiceSteaming = "steaming"
)

type ServiceOffering struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var Services = []ServiceOffering{
	{
		Code:        ServiceMassage,
		Title:       "Massage",
		Description: "Professional techniques to relieve muscle tension, promote blood circulation and help the body regain vitality.",
	},
	{
		Code:        ServiceGuasha,
		Title:       "Gua Sha",
		Description: "Specific tools and techniques to promote blood circulation, relieve muscle soreness and improve immunity.",
	},
	{
		Code:        ServiceCupping,
		Title:       "Cupping",
		Description: "Cupping therapy to help eliminate internal moisture and cold, reduce muscle pain and improve overall health.",
	},
	{
		Code:        ServiceSteaming,
		Title:       "Herbal Steam",
		Description: "Traditional herbal medicine combined with steam therapy to promote detoxification and relieve muscle tension.",
	},
}

// serviceAliases maps codes found in older payment rows onto the current ones.
var serviceAliases = map[string]string{
	"message": ServiceMassage,
}

// NormalizeService returns the current code for code, resolving legacy aliases.
func NormalizeService(code string) string {
	if current, ok := serviceAliases[code]; ok {
		return current
	}
	return code
}

func IsValidService(code string) bool {
	code = NormalizeService(code)
	for _, s := range Services {
		if s.Code == code {
			return true
		}
	}
	return false
}
