package transfer

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	CodeMalformedJSON = "IMPORT_MALFORMED_JSON"
	CodeInvalidMode   = "IMPORT_MODE_INVALID"
	CodeReadFailed    = "IMPORT_READ_FAILED"
	CodeWriteFailed   = "IMPORT_WRITE_FAILED"
	CodeExportFailed  = "EXPORT_FAILED"
)

var ErrStoreRequired = errors.New("transfer: store required")

func malformedJSON(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryBadInput, "import document is not valid JSON").
		WithTextCode(CodeMalformedJSON)
}

func invalidMode(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "import mode must be merge or replace").
		WithTextCode(CodeInvalidMode)
}

func readFailed(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryBadInput, "import file could not be read").
		WithTextCode(CodeReadFailed)
}

func writeFailed(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, "import could not be stored").
		WithTextCode(CodeWriteFailed)
}

func exportFailed(err error, message string) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, message).
		WithTextCode(CodeExportFailed)
}
