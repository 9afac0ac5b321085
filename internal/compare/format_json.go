package compare

import (
	"encoding/json"

	ierr "github.com/campworks/cycleplan/internal/errors"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	if compSet == nil {
		return "", ierr.NewError("nothing to format").Mark(ierr.ErrValidation)
	}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(compSet, "", "  ")
	} else {
		data, err = json.Marshal(compSet)
	}
	if err != nil {
		return "", ierr.WithError(err).WithMessage("failed to encode comparison").Mark(ierr.ErrValidation)
	}

	return string(data) + "\n", nil
}
