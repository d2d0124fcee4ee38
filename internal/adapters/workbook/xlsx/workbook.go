// Package xlsx is the excelize-backed workbook source and sink.
package xlsx

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/netobserve/location-audit/internal/core/domain"
	"github.com/netobserve/location-audit/internal/core/ports"
	"github.com/netobserve/location-audit/internal/errors"
)

const SummarySheetName = "Summary"

type Workbook struct {
	f      *excelize.File
	path   string
	logger ports.Logger
	now    func() time.Time

	styles styleSet
}

// Open loads the workbook and writes a .bak copy of the original file
// next to it before anything else can touch the content.
func Open(path string, logger ports.Logger) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeWorkbookReadError,
			"failed to open workbook "+path,
			"Check the path and make sure the file is not open in another program.")
	}

	w := &Workbook{f: f, path: path, logger: logger, now: time.Now}
	if err := w.backup(); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

func (w *Workbook) backup() error {
	backupPath := w.path + ".bak"

	src, err := os.Open(w.path)
	if err != nil {
		return errors.Wrap(err, errors.CodeWorkbookBackup, "failed reading workbook for backup")
	}
	defer src.Close()

	dst, err := os.Create(backupPath)
	if err != nil {
		return errors.Wrap(err, errors.CodeWorkbookBackup, "failed creating backup file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return errors.Wrap(err, errors.CodeWorkbookBackup, "failed writing backup file")
	}

	w.logger.Infof(context.Background(), "Backup created at %s", backupPath)
	return nil
}

// SheetNames lists the device sheets in workbook order. A Summary sheet
// left over from a previous run is not a device sheet.
func (w *Workbook) SheetNames() []string {
	var names []string
	for _, name := range w.f.GetSheetList() {
		if name == SummarySheetName {
			continue
		}
		names = append(names, name)
	}
	return names
}

func (w *Workbook) ReadSheet(ctx context.Context, name string) (*domain.Sheet, error) {
	rows, err := w.f.GetRows(name)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeWorkbookReadError, "failed reading sheet "+name)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New(errors.CodeSheetStructure, "sheet "+name+" is empty")
	}

	return &domain.Sheet{
		Name:   name,
		Header: rows[0],
		Rows:   rows[1:],
	}, nil
}

func (w *Workbook) Save(ctx context.Context) error {
	if err := w.f.Save(); err != nil {
		return errors.WrapUserFacing(err, errors.CodeWorkbookWriteError,
			"failed to save workbook "+w.path,
			"Make sure the file is not open in another program.")
	}
	w.logger.Infof(ctx, "All sheets processed and saved to %s", w.path)
	return w.f.Close()
}
