package paginate

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrVerify indicates a rendered PDF that does not read back as expected.
var ErrVerify = errors.New("pdf verification failed")

// CountPages parses and validates a PDF and returns its page count.
func CountPages(data []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrVerify, err)
	}
	return ctx.PageCount, nil
}

// Verify checks that the serialized PDF holds exactly the rendered pages.
func (r *Result) Verify() error {
	n, err := CountPages(r.Data)
	if err != nil {
		return err
	}
	if n != len(r.Pages) {
		return fmt.Errorf("%w: %d pages in file, %d rendered", ErrVerify, n, len(r.Pages))
	}
	return nil
}
