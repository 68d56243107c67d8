package domain

// OperationKind identifies one of the AI-assisted operations.
// Each kind owns an independent session and error channel.
type OperationKind string

const (
	OpTableSuggestion    OperationKind = "tables"
	OpAssistedWriting    OperationKind = "assistedWriting"
	OpTemplateSuggestion OperationKind = "template"
	OpMassDelete         OperationKind = "massDelete"
	OpCheckData          OperationKind = "checkData"
	OpSuggestDataType    OperationKind = "suggestDataType"
)

// OperationKinds lists every kind in a stable order.
var OperationKinds = []OperationKind{
	OpTableSuggestion,
	OpAssistedWriting,
	OpTemplateSuggestion,
	OpMassDelete,
	OpCheckData,
	OpSuggestDataType,
}

// ParseOperationKind validates a kind name.
func ParseOperationKind(s string) (OperationKind, error) {
	for _, k := range OperationKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", ErrUnknownKind
}

// TableRequest asks for generated collections from a project description.
type TableRequest struct {
	TablesDescription    string `json:"tablesDescription"`
	OldAITablesGenerated string `json:"oldAiTablesGeneratedStr,omitempty"`
}

// GeneratedTable is one collection proposed by the service.
type GeneratedTable struct {
	Name       string      `json:"name"`
	Attributes []Attribute `json:"attributes"`
}

// TableResponse carries the proposed tables and the raw model answer,
// which is fed back as OldAITablesGenerated when refining.
type TableResponse struct {
	Tables         []GeneratedTable `json:"tables"`
	ResponseFromAI string           `json:"responseFromAi"`
}

// WritingType selects the assisted-writing mutation.
type WritingType string

const (
	WritingExpand   WritingType = "EXPAND"
	WritingContract WritingType = "CONTRACT"
)

// AssistedWritingRequest asks the service to expand or contract a text.
type AssistedWritingRequest struct {
	InputString string      `json:"inputString"`
	Type        WritingType `json:"eTypeAssistedWriting"`
}

// AssistedWritingResponse holds the rewritten text.
type AssistedWritingResponse struct {
	GeneratedString string `json:"generatedString"`
}

// TemplateSuggestionRequest describes a project to match against templates.
type TemplateSuggestionRequest struct {
	ProjectDescription string `json:"projectDescription"`
}

// TemplateSuggestionResponse lists template names, best match first.
type TemplateSuggestionResponse struct {
	BestMatchTemplates []string `json:"bestMatchTemplates"`
}

// MassDeleteRequest describes which rows to delete. Data holds the header line
// followed by one pipe-joined line per document.
type MassDeleteRequest struct {
	DeleteDescription string   `json:"deleteDescription"`
	Data              []string `json:"data"`
}

// MassDeleteResponse lists the candidate document ids.
type MassDeleteResponse struct {
	IDsToBeDeleted []string `json:"idsToBeDeleted"`
}

// CheckDataRequest carries the formatted values of one attribute.
type CheckDataRequest struct {
	Data []string `json:"data"`
}

// CheckDataResponse lists values the service considers anomalous.
type CheckDataResponse struct {
	InvalidData []string `json:"invalidData"`
}

// SuggestDataTypeRequest carries sample values and the current attribute.
type SuggestDataTypeRequest struct {
	Data      []string  `json:"data"`
	Attribute Attribute `json:"attribute"`
}

// SuggestDataTypeResponse holds the attribute with the suggested constraint.
type SuggestDataTypeResponse struct {
	Attribute *Attribute `json:"attribute"`
}
