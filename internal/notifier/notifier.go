// Package notifier delivers desktop notifications through the fastward
// tray companion app. The tray process writes a lockfile with its local
// webhook port and a shared secret; we validate the process is actually
// ours before posting to it.
package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/fastward/fastward/internal/constants"
)

// Swappable in tests.
var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

var webhookClient = &http.Client{Timeout: 5 * time.Second}

type Notifier struct{}

type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func New() *Notifier {
	return &Notifier{}
}

// Notify posts text to the tray app's local webhook. Transient HTTP
// failures are retried a few times; a missing or invalid tray process is
// reported immediately so callers can tell the user to start the tray.
func (n *Notifier) Notify(text string) error {
	trayConfigPath, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}

	port, secret, err := findAndValidateTrayProcess(filepath.Join(trayConfigPath, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	payload := WebhookPayload{
		Text:       text,
		DurationMs: constants.NotificationDurationMs,
	}

	var lastErr error
	for attempt := 0; attempt < constants.NotifyMaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(constants.NotifyRetryDelay)
		}
		if lastErr = sendNotification(port, secret, payload); lastErr == nil {
			return nil
		}
	}
	return lastErr
}

// GetTrayAppConfigDir returns the directory holding the tray app's
// lockfile. The tray's own settings.json may relocate it via a
// lockfile_dir override.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	trayDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	if override := lockfileDirOverride(filepath.Join(trayDir, "settings.json")); override != "" {
		return override, nil
	}
	return trayDir, nil
}

func lockfileDirOverride(settingsPath string) string {
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return ""
	}
	var settings struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if json.Unmarshal(data, &settings) != nil || settings.Settings.LockfileDir == nil {
		return ""
	}
	return *settings.Settings.LockfileDir
}

// lockfile is the tray's "port|pid|secret" handshake file.
type lockfile struct {
	port   int
	pid    int
	secret string
}

func parseLockfile(content string) (lockfile, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 3 {
		return lockfile{}, errors.New("lockfile is malformed")
	}

	port, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return lockfile{}, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return lockfile{}, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return lockfile{}, errors.New("invalid process ID in lockfile")
	}

	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return lockfile{}, errors.New("secret in lockfile is empty")
	}

	return lockfile{port: port, pid: pid, secret: secret}, nil
}

func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", errors.New("fastward-tray is not running")
	}

	lf, err := parseLockfile(string(content))
	if err != nil {
		return "", "", err
	}

	// A stale lockfile may point at a recycled PID; require the executable
	// name to match before trusting the port.
	process, err := findProcessFunc(lf.pid)
	if err != nil || process == nil {
		return "", "", errors.New("fastward-tray process not running")
	}
	if !strings.HasPrefix(process.Executable(), "fastward-tray") {
		return "", "", fmt.Errorf("process with PID %d is not fastward-tray (is %s)", lf.pid, process.Executable())
	}

	return strconv.Itoa(lf.port), lf.secret, nil
}

func sendNotification(port string, secret string, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, "http://127.0.0.1:"+port, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Fastward-Secret", secret)

	res, err := webhookClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(msg))
	}
	return nil
}
