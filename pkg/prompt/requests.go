package prompt

import "github.com/aretw0/lumina/pkg/domain"

// TableRequest cleans the project description of a table request.
func (s Sanitizer) TableRequest(req domain.TableRequest) (domain.TableRequest, error) {
	var err error
	req.TablesDescription, err = s.Clean(req.TablesDescription)
	return req, err
}

// AssistedWritingRequest cleans the text to rewrite.
func (s Sanitizer) AssistedWritingRequest(req domain.AssistedWritingRequest) (domain.AssistedWritingRequest, error) {
	var err error
	req.InputString, err = s.Clean(req.InputString)
	return req, err
}

// TemplateSuggestionRequest cleans the project description.
func (s Sanitizer) TemplateSuggestionRequest(req domain.TemplateSuggestionRequest) (domain.TemplateSuggestionRequest, error) {
	var err error
	req.ProjectDescription, err = s.Clean(req.ProjectDescription)
	return req, err
}

// MassDeleteRequest cleans the delete description. Table lines are built
// from stored data and passed through.
func (s Sanitizer) MassDeleteRequest(req domain.MassDeleteRequest) (domain.MassDeleteRequest, error) {
	var err error
	req.DeleteDescription, err = s.Clean(req.DeleteDescription)
	return req, err
}
