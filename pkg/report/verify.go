package report

import (
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/jobmate/reportgen/pkg/errors"
)

// VerifyFile validates a written PDF and returns its page count. Used by
// the CLI -verify flag and by the download handler's sanity check.
func VerifyFile(path string) (int, error) {
	if err := api.ValidateFile(path, nil); err != nil {
		return 0, errors.WrapLayout(err, errors.ErrLayoutDocumentFailed, "pdf validation failed").
			WithContext("path", path)
	}

	pages, err := api.PageCountFile(path)
	if err != nil {
		return 0, errors.WrapLayout(err, errors.ErrLayoutDocumentFailed, "page count failed").
			WithContext("path", path)
	}
	return pages, nil
}
