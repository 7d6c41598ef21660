package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/SGP-2025/attendance-service/internal/models"
	"github.com/SGP-2025/attendance-service/internal/repositories"
)

const (
	absenceFilePrefix = "absences_"
	absenceFileExt    = ".xlsx"
	dateLayout        = "2006-01-02"
	sheetName         = "Sheet1"
)

// Column headers of an absence batch file. These match the files the system
// has always produced, so previously recorded batches keep loading.
var absenceColumns = []string{"Code Massar", "Nom", "Date", "Heure", "Classe"}

// AbsenceStore writes one .xlsx file per (class, date, time-slot) roll call
// under absences/<class key>/ and scans them back for reporting. Writes for
// the same key replace the previous file; batches are never merged.
type AbsenceStore struct {
	root string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewAbsenceStore(root string) *AbsenceStore {
	return &AbsenceStore{
		root:  root,
		locks: make(map[string]*sync.Mutex),
	}
}

var _ repositories.AbsenceRepository = (*AbsenceStore)(nil)

// classLock serializes writers of one class directory.
func (s *AbsenceStore) classLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

func (s *AbsenceStore) RecordAbsences(ctx context.Context, classKey, className string, date time.Time, timeSlot string, absentees []models.RosterEntry) (string, error) {
	if len(absentees) == 0 {
		// Presence is implicit: an empty batch must not create a file.
		return "", nil
	}

	lock := s.classLock(classKey)
	lock.Lock()
	defer lock.Unlock()

	dir := filepath.Join(s.root, classKey)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create class directory %s: %w", dir, err)
	}

	safeDate := date.Format(dateLayout)
	safeSlot := strings.ReplaceAll(timeSlot, ":", "_")
	path := filepath.Join(dir, absenceFilePrefix+safeDate+"_"+safeSlot+absenceFileExt)

	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(absenceColumns))
	for i, col := range absenceColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return "", fmt.Errorf("write header row: %w", err)
	}

	for i, student := range absentees {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", fmt.Errorf("compute cell for row %d: %w", i+2, err)
		}
		row := []interface{}{student.Code, student.Name, safeDate, timeSlot, className}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return "", fmt.Errorf("write absence row %d: %w", i+2, err)
		}
	}

	// Save through a temp file so a crash cannot leave a half-written
	// batch under the final name. The temp name keeps the .xlsx suffix
	// but not the absences_ prefix, so readers never pick an orphan up.
	tmp, err := os.CreateTemp(dir, ".absences-*"+absenceFileExt)
	if err != nil {
		return "", fmt.Errorf("create temp absence file: %w", err)
	}
	tmpName := tmp.Name()

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("save absence file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close temp absence file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("replace absence file %s: %w", path, err)
	}
	return path, nil
}

func (s *AbsenceStore) ListForMonth(ctx context.Context, classKey string, month time.Month) ([]models.AbsenceRecord, []string, error) {
	dir := filepath.Join(s.root, classKey)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read class directory %s: %w", dir, err)
	}

	var records []models.AbsenceRecord
	var warnings []string
	for _, entry := range entries {
		if entry.IsDir() || !isAbsenceFile(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		rows, err := readAbsenceFile(path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("cannot read file %s: %v", entry.Name(), err))
			continue
		}

		for _, r := range rows {
			if r.Date.Month() == month {
				records = append(records, r)
			}
		}
	}
	return records, warnings, nil
}

// readAbsenceFile parses one batch file. Rows with missing or unparseable
// dates are dropped; a missing required column fails the whole file.
func readAbsenceFile(path string) ([]models.AbsenceRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[name] = i
	}
	codeIdx, ok := cols["Code Massar"]
	if !ok {
		return nil, errors.New("missing column Code Massar")
	}
	nameIdx, ok := cols["Nom"]
	if !ok {
		return nil, errors.New("missing column Nom")
	}
	dateIdx, ok := cols["Date"]
	if !ok {
		return nil, errors.New("missing column Date")
	}
	slotIdx, hasSlot := cols["Heure"]
	classIdx, hasClass := cols["Classe"]

	var records []models.AbsenceRecord
	for _, row := range rows[1:] {
		if dateIdx >= len(row) {
			continue
		}
		date, err := time.Parse(dateLayout, strings.TrimSpace(row[dateIdx]))
		if err != nil {
			continue
		}

		r := models.AbsenceRecord{Date: date}
		if codeIdx < len(row) {
			r.StudentCode = row[codeIdx]
		}
		if nameIdx < len(row) {
			r.StudentName = row[nameIdx]
		}
		if hasSlot && slotIdx < len(row) {
			r.TimeSlot = row[slotIdx]
		}
		if hasClass && classIdx < len(row) {
			r.ClassName = row[classIdx]
		}
		records = append(records, r)
	}
	return records, nil
}

func (s *AbsenceStore) Sweep(ctx context.Context, cutoff time.Time) (int, []string, error) {
	classDirs, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil, nil
		}
		return 0, nil, fmt.Errorf("read absence root %s: %w", s.root, err)
	}

	removed := 0
	var warnings []string
	for _, classDir := range classDirs {
		if !classDir.IsDir() {
			continue
		}

		lock := s.classLock(classDir.Name())
		lock.Lock()

		dir := filepath.Join(s.root, classDir.Name())
		entries, err := os.ReadDir(dir)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("cannot read directory %s: %v", classDir.Name(), err))
			lock.Unlock()
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !isAbsenceFile(entry.Name()) {
				continue
			}
			date, ok := dateFromFilename(entry.Name())
			if !ok {
				warnings = append(warnings, fmt.Sprintf("cannot determine date of %s", entry.Name()))
				continue
			}
			if !date.Before(cutoff) {
				continue
			}
			if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
				warnings = append(warnings, fmt.Sprintf("cannot remove %s: %v", entry.Name(), err))
				continue
			}
			removed++
		}
		lock.Unlock()
	}
	return removed, warnings, nil
}

// isAbsenceFile reports whether name looks like a batch file. Crash-orphaned
// temp files and anything else in the directory are not ours to read.
func isAbsenceFile(name string) bool {
	return strings.HasPrefix(name, absenceFilePrefix) && strings.HasSuffix(name, absenceFileExt)
}

// dateFromFilename extracts the batch date from
// "absences_<YYYY-MM-DD>_<slot>.xlsx".
func dateFromFilename(name string) (time.Time, bool) {
	rest, ok := strings.CutPrefix(name, absenceFilePrefix)
	if !ok || len(rest) < len(dateLayout) {
		return time.Time{}, false
	}
	date, err := time.Parse(dateLayout, rest[:len(dateLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}
