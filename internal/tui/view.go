package tui

import (
	"fmt"
	"strings"

	"github.com/fastward/fastward/internal/models"
	"github.com/fastward/fastward/internal/timeutil"
)

var viewNames = []string{"Timer", "History", "Schedule"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.form != nil {
		return docStyle.Render(m.form.View())
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.loadErr != nil {
		b.WriteString(dangerStyle.Render(fmt.Sprintf("Error: %v", m.loadErr)))
		b.WriteString("\n")
	}

	switch m.view {
	case viewTimer:
		b.WriteString(m.renderTimer())
	case viewHistory:
		b.WriteString(m.renderHistory())
	case viewSchedule:
		b.WriteString(m.renderSchedule())
	}

	if m.confirm == confirmCancel {
		b.WriteString("\n")
		b.WriteString(dangerStyle.Render("Cancel the running fast? It won't count toward streaks. [y/N]"))
	}
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(m.notice))
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return docStyle.Render(b.String())
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(viewNames))
	for i, name := range viewNames {
		if view(i) == m.view {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = inactiveTabStyle.Render(name)
		}
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderTimer() string {
	var b strings.Builder

	if m.active == nil {
		b.WriteString(timerStyle.Render("Not fasting"))
		b.WriteString("\n\n")
		if next := m.nextFastEntry(); next != nil {
			b.WriteString(fmt.Sprintf("Next fast suggested at %s.\n", timeutil.FormatClock(next.FiresAt, m.profile.Timezone)))
		} else {
			b.WriteString("Press s to start a fast.\n")
		}
	} else {
		remaining := m.active.Remaining(m.now)
		pct := int(m.active.Progress(m.now) * 100)
		b.WriteString(timerStyle.Render(fmt.Sprintf("%s fast\n%s remaining  ·  %d%%",
			m.active.Protocol, timeutil.FormatDuration(remaining), pct)))
		b.WriteString("\n\n")
		b.WriteString(statLabelStyle.Render("Started"))
		b.WriteString(timeutil.FormatClock(m.active.StartedAt, m.profile.Timezone))
		b.WriteString("\n")
		b.WriteString(statLabelStyle.Render("Ends"))
		b.WriteString(timeutil.FormatClock(m.active.TargetEndAt, m.profile.Timezone))
		b.WriteString("\n")
		b.WriteString(statLabelStyle.Render("Water"))
		b.WriteString(fmt.Sprintf("%d glasses", m.active.WaterCount))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statLabelStyle.Render("Current streak"))
	b.WriteString(fmt.Sprintf("%d days\n", m.streaks.CurrentStreak))
	b.WriteString(statLabelStyle.Render("Longest streak"))
	b.WriteString(fmt.Sprintf("%d days\n", m.streaks.LongestStreak))
	b.WriteString(statLabelStyle.Render("Completed"))
	b.WriteString(fmt.Sprintf("%d fasts\n", m.streaks.TotalCompleted))
	b.WriteString(statLabelStyle.Render("30-day rate"))
	b.WriteString(fmt.Sprintf("%d%%\n", m.streaks.CompletionRate))

	return b.String()
}

func (m Model) nextFastEntry() *models.PlanEntry {
	for i := range m.plan {
		if m.plan[i].Kind == models.NotifNextFast {
			return &m.plan[i]
		}
	}
	return nil
}

func (m Model) renderHistory() string {
	if len(m.history) == 0 {
		return "No finished fasts yet.\n"
	}

	var b strings.Builder
	for _, sess := range m.history {
		date := timeutil.FromMillis(sess.StartedAt).Format("2006-01-02")
		if sess.ActualEndAt != nil {
			date = timeutil.FromMillis(*sess.ActualEndAt).Format("2006-01-02")
		}
		marker := "✓"
		if sess.Status == models.SessionCancelled {
			marker = "✗"
		}
		b.WriteString(fmt.Sprintf("%s %s  %-10s %4.1fh  💧%d\n", marker, date, sess.Protocol, sess.FastingHours, sess.WaterCount))
	}
	return b.String()
}

func (m Model) renderSchedule() string {
	if len(m.plan) == 0 {
		if !m.profile.NotificationsEnabled {
			return "Notifications are disabled in your profile.\n"
		}
		return "Nothing scheduled.\n"
	}

	var b strings.Builder
	for _, entry := range m.plan {
		b.WriteString(fmt.Sprintf("%s  %s\n", timeutil.FormatClock(entry.FiresAt, m.profile.Timezone), entry.Message))
	}
	return b.String()
}
