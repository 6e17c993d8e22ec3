package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// check-param-names
	ParamInfo               Code = 1000
	ParamDuplicate          Code = 1001
	ParamExtraTrailing      Code = 1002
	ParamAnnotationMismatch Code = 1003
	ParamMissingProperty    Code = 1004
	ParamUnknownProperty    Code = 1005
	ParamNameMismatch       Code = 1006
	ParamPathBeforeParam    Code = 1007
	ParamPathRootMismatch   Code = 1008

	// require-property-description
	PropInfo               Code = 2000
	PropMissingDescription Code = 2001

	// bundles
	IOLoadFileError  Code = 4001
	IODecodeError    Code = 4002
	IOInvalidBundle  Code = 4003
	IOWriteFileError Code = 4004

	// config
	CfgInfo          Code = 5000
	CfgInvalidOption Code = 5001

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

// Rule names owning a code range.
const (
	RuleCheckParamNames            = "check-param-names"
	RuleRequirePropertyDescription = "require-property-description"
)

var (
	codeDescription = map[Code]string{
		UnknownCode:             "Unknown error",
		ParamInfo:               "Parameter documentation",
		ParamDuplicate:          "Duplicate parameter documentation",
		ParamExtraTrailing:      "Documented parameter does not exist",
		ParamAnnotationMismatch: "Documented name differs from annotation",
		ParamMissingProperty:    "Destructured property is not documented",
		ParamUnknownProperty:    "Documented property does not exist",
		ParamNameMismatch:       "Parameter names do not match",
		ParamPathBeforeParam:    "Property path precedes its parameter",
		ParamPathRootMismatch:   "Property path root does not match parameter",
		PropInfo:                "Property documentation",
		PropMissingDescription:  "Property description is missing",
		IOLoadFileError:         "I/O load file error",
		IODecodeError:           "Bundle decode error",
		IOInvalidBundle:         "Invalid declaration bundle",
		IOWriteFileError:        "I/O write file error",
		CfgInfo:                 "Configuration information",
		CfgInvalidOption:        "Invalid rule option",
		ObsInfo:                 "Observability information",
		ObsTimings:              "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("PRM%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("PRP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

// Rule returns the rule that emits c, or "" for infrastructure codes.
func (c Code) Rule() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return RuleCheckParamNames
	case ic >= 2000 && ic < 3000:
		return RuleRequirePropertyDescription
	}
	return ""
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
