package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"rhystmorgan/clientDesk/internal/models"
)

const (
	defaultBatchSize     = 10
	defaultFlushInterval = time.Minute
)

// RecordAuditor keeps a JSON-lines trail of confirmed record operations.
// Entries are batched in memory and flushed when the batch fills, on a
// timer, or on Close.
type RecordAuditor struct {
	logFile    string
	sessionID  string
	batchSize  int
	batchMu    sync.Mutex
	fileMu     sync.Mutex
	batchLogs  []AuditLog
	flushTimer *time.Timer
	now        func() time.Time
}

func NewRecordAuditor(logDir string) (*RecordAuditor, error) {
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create audit log directory: %w", err)
	}

	logFile := filepath.Join(logDir, fmt.Sprintf("record_audit_%s.log", time.Now().Format("2006-01-02")))

	auditor := &RecordAuditor{
		logFile:   logFile,
		sessionID: uuid.NewString(),
		batchSize: defaultBatchSize,
		batchLogs: make([]AuditLog, 0, defaultBatchSize),
		now:       time.Now,
	}

	auditor.flushTimer = time.AfterFunc(defaultFlushInterval, func() {
		_ = auditor.Flush()
	})

	return auditor, nil
}

func (a *RecordAuditor) LogFile() string {
	return a.logFile
}

func (a *RecordAuditor) SessionID() string {
	return a.sessionID
}

// LogCreate records a confirmed creation.
func (a *RecordAuditor) LogCreate(record models.Record) error {
	return a.append(AuditLog{
		RecordID: record.ID,
		Action:   AuditActionCreate,
		Details: map[string]interface{}{
			"name":   record.Name,
			"email":  record.Email,
			"status": string(record.Status),
		},
	})
}

// LogUpdate records the fields that changed between before and after.
// Nothing is logged when the records are identical.
func (a *RecordAuditor) LogUpdate(before, after models.Record) error {
	changes := ChangesFromDiff(before.Diff(&after))
	if len(changes) == 0 {
		return nil
	}

	return a.append(AuditLog{
		RecordID: after.ID,
		Action:   AuditActionUpdate,
		Changes:  changes,
	})
}

func (a *RecordAuditor) LogDelete(record models.Record) error {
	return a.append(AuditLog{
		RecordID: record.ID,
		Action:   AuditActionDelete,
		Details: map[string]interface{}{
			"name":  record.Name,
			"email": record.Email,
		},
	})
}

// LogExport records a CSV export or HTML print of count records to path.
func (a *RecordAuditor) LogExport(action AuditAction, path string, count int, criteria string) error {
	return a.append(AuditLog{
		Action: action,
		Details: map[string]interface{}{
			"path":     path,
			"count":    count,
			"criteria": criteria,
		},
	})
}

func (a *RecordAuditor) append(log AuditLog) error {
	log.ID = uuid.NewString()
	log.Timestamp = a.now()
	log.SessionID = a.sessionID

	a.batchMu.Lock()
	a.batchLogs = append(a.batchLogs, log)

	if len(a.batchLogs) >= a.batchSize {
		a.batchMu.Unlock()
		return a.Flush()
	}
	a.batchMu.Unlock()

	return nil
}

// Flush writes all pending audit logs to the log file
func (a *RecordAuditor) Flush() error {
	a.batchMu.Lock()
	if len(a.batchLogs) == 0 {
		a.batchMu.Unlock()
		return nil
	}

	if a.flushTimer != nil {
		a.flushTimer.Reset(defaultFlushInterval)
	}

	logsToFlush := make([]AuditLog, len(a.batchLogs))
	copy(logsToFlush, a.batchLogs)
	a.batchLogs = a.batchLogs[:0]
	a.batchMu.Unlock()

	a.fileMu.Lock()
	defer a.fileMu.Unlock()

	file, err := os.OpenFile(a.logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, log := range logsToFlush {
		logJSON, err := json.Marshal(log)
		if err != nil {
			return fmt.Errorf("failed to marshal audit log: %w", err)
		}

		if _, err := writer.Write(append(logJSON, '\n')); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}

	return nil
}

// GetRecordHistory returns every flushed entry for recordID, oldest first.
func (a *RecordAuditor) GetRecordHistory(recordID int64) ([]AuditLog, error) {
	var logs []AuditLog

	if err := a.Flush(); err != nil {
		return nil, err
	}

	a.fileMu.Lock()
	defer a.fileMu.Unlock()

	file, err := os.Open(a.logFile)
	if err != nil {
		if os.IsNotExist(err) {
			return logs, nil
		}
		return nil, fmt.Errorf("failed to open audit log file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	for {
		var log AuditLog
		if err := decoder.Decode(&log); err != nil {
			break
		}

		if log.RecordID == recordID {
			logs = append(logs, log)
		}
	}

	return logs, nil
}

// Close ensures all pending logs are written
func (a *RecordAuditor) Close() error {
	if a.flushTimer != nil {
		a.flushTimer.Stop()
	}
	return a.Flush()
}
