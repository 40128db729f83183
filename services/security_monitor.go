package services

import (
	"fmt"
	"sync"
	"time"

	"jacha_aru_api_go/logger"

	"go.uber.org/zap"
)

const (
	defaultFailedLoginThreshold = 5
	defaultFailedLoginWindow    = 10 * time.Minute
	alertCooldown               = time.Hour
	maxAlertHistory             = 100
)

// SecurityAlert is raised when an IP keeps failing to log in
type SecurityAlert struct {
	Timestamp time.Time `json:"timestamp"`
	IP        string    `json:"ip"`
	Reason    string    `json:"reason"`
	Attempts  int       `json:"attempts"`
}

// LoginMonitor counts failed logins per IP inside a sliding window and
// raises at most one alert per IP per hour. Alerts are logged and, when
// AlertTo is set, mailed through the notifier.
type LoginMonitor struct {
	Threshold int
	Window    time.Duration
	AlertTo   string
	Notifier  Notifier

	now func() time.Time

	mu       sync.Mutex
	failures map[string][]time.Time
	alerted  map[string]time.Time
	alerts   []SecurityAlert
}

func NewLoginMonitor(notifier Notifier, alertTo string) *LoginMonitor {
	return &LoginMonitor{
		Threshold: defaultFailedLoginThreshold,
		Window:    defaultFailedLoginWindow,
		AlertTo:   alertTo,
		Notifier:  notifier,
		now:       time.Now,
		failures:  make(map[string][]time.Time),
		alerted:   make(map[string]time.Time),
	}
}

// TrackFailedLogin records one failure and reports whether it raised an alert
func (m *LoginMonitor) TrackFailedLogin(ip string) bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	attempts := recentSince(append(m.failures[ip], now), now.Add(-m.Window))
	m.failures[ip] = attempts

	if len(attempts) < m.Threshold {
		return false
	}
	if last, ok := m.alerted[ip]; ok && now.Sub(last) < alertCooldown {
		return false
	}
	m.alerted[ip] = now

	alert := SecurityAlert{Timestamp: now, IP: ip, Reason: "multiple failed logins", Attempts: len(attempts)}
	m.alerts = append([]SecurityAlert{alert}, m.alerts...)
	if len(m.alerts) > maxAlertHistory {
		m.alerts = m.alerts[:maxAlertHistory]
	}
	authEventsTotal.WithLabelValues("security_alert").Inc()

	logger.Named("security").Error("security alert",
		zap.String("ip", ip),
		zap.String("reason", alert.Reason),
		zap.Int("attempts", alert.Attempts),
	)
	if m.AlertTo != "" {
		SendEmailAsync(m.Notifier, &Email{
			To:      []string{m.AlertTo},
			Subject: "Security alert: " + alert.Reason,
			TextBody: fmt.Sprintf("%d failed logins from %s in the last %s.\nTime: %s",
				alert.Attempts, ip, m.Window, now.Format(time.RFC1123)),
		})
	}
	return true
}

// RecentAlerts returns a copy of the alert history, newest first
func (m *LoginMonitor) RecentAlerts() []SecurityAlert {
	if m == nil {
		return []SecurityAlert{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SecurityAlert{}, m.alerts...)
}

// Prune forgets IPs with no failures inside the window and expired cooldowns
func (m *LoginMonitor) Prune() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for ip, attempts := range m.failures {
		if kept := recentSince(attempts, now.Add(-m.Window)); len(kept) > 0 {
			m.failures[ip] = kept
		} else {
			delete(m.failures, ip)
		}
	}
	for ip, last := range m.alerted {
		if now.Sub(last) >= alertCooldown {
			delete(m.alerted, ip)
		}
	}
}

func recentSince(times []time.Time, start time.Time) []time.Time {
	kept := times[:0]
	for _, t := range times {
		if t.After(start) {
			kept = append(kept, t)
		}
	}
	return kept
}
