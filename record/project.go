package record

import (
	"github.com/devwithmj/jsonsanitize"
	"github.com/lyricat/goutils/structs"
)

// Project maps a sanitize result into the value written under the output
// field for the given mode.
func Project(res *jsonsanitize.Result, mode Mode) any {
	switch mode {
	case ModeString:
		return res.CleanedString
	case ModeBoth:
		m := structs.NewJSONMap()
		m["parsed"] = res.Parsed
		m["cleanedString"] = res.CleanedString
		m["wasAlreadyParsed"] = res.WasAlreadyParsed
		m["wasRepaired"] = res.WasRepaired
		m["originalType"] = res.OriginalType()
		return m
	case ModeRepair:
		m := structs.NewJSONMap()
		m["parsed"] = res.Parsed
		m["repairedString"] = res.CleanedString
		m["wasRepaired"] = res.WasRepaired
		m["originalInput"] = res.Original
		return m
	default:
		return res.Parsed
	}
}
