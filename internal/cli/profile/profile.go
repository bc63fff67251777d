package profile

import (
	"fmt"

	"github.com/fastward/fastward/internal/cli"
	"github.com/fastward/fastward/internal/timeutil"
)

type ProfileCmd struct {
	List bool `help:"List the current profile."`

	Timezone              *string `help:"IANA timezone for display (e.g. Europe/Berlin), or \"Local\"."`
	NotificationsEnabled  *bool   `help:"Enable or disable all notifications."`
	NotifyHalfway         *bool   `help:"Notify at 50% and 75% of the fast."`
	NotifyFastEnd         *bool   `help:"Notify when the fast reaches its target."`
	NotifyNextFast        *bool   `help:"Suggest when to start the next fast."`
	WaterReminders        *bool   `help:"Enable periodic water reminders during a fast."`
	WaterIntervalMin      *int    `help:"Minutes between water reminders."`
	EatingWindowHours     *int    `help:"Eating window length in hours."`
	DefaultProtocol       *string `help:"Protocol used when 'fastward start' is given no argument."`
	NotificationGraceMin  *int    `help:"How long past its instant a reminder may still fire, in minutes."`
}

func (c *ProfileCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Fasting.Profile(ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	if c.List {
		fmt.Println("Profile:")
		fmt.Printf("  Timezone:              %s\n", profile.Timezone)
		fmt.Printf("  Default Protocol:      %s\n", profile.DefaultProtocol)
		fmt.Printf("  Eating Window:         %d h\n", profile.EatingWindowHours)
		fmt.Println("\nNotification Settings:")
		fmt.Printf("  Notifications Enabled: %v\n", profile.NotificationsEnabled)
		fmt.Printf("  Notify Halfway:        %v\n", profile.NotifyHalfway)
		fmt.Printf("  Notify Fast End:       %v\n", profile.NotifyFastEnd)
		fmt.Printf("  Notify Next Fast:      %v\n", profile.NotifyNextFast)
		fmt.Printf("  Water Reminders:       %v\n", profile.WaterRemindersEnabled)
		fmt.Printf("  Water Interval:        %d min\n", profile.WaterReminderIntervalMin)
		fmt.Printf("  Notification Grace:    %d min\n", profile.NotificationGracePeriodMin)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if !timeutil.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("unknown timezone %q", *c.Timezone)
		}
		profile.Timezone = *c.Timezone
		updated = true
	}
	if c.NotificationsEnabled != nil {
		profile.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.NotifyHalfway != nil {
		profile.NotifyHalfway = *c.NotifyHalfway
		updated = true
	}
	if c.NotifyFastEnd != nil {
		profile.NotifyFastEnd = *c.NotifyFastEnd
		updated = true
	}
	if c.NotifyNextFast != nil {
		profile.NotifyNextFast = *c.NotifyNextFast
		updated = true
	}
	if c.WaterReminders != nil {
		profile.WaterRemindersEnabled = *c.WaterReminders
		updated = true
	}
	if c.WaterIntervalMin != nil {
		if *c.WaterIntervalMin <= 0 {
			return fmt.Errorf("water interval must be positive")
		}
		profile.WaterReminderIntervalMin = *c.WaterIntervalMin
		updated = true
	}
	if c.EatingWindowHours != nil {
		if *c.EatingWindowHours <= 0 || *c.EatingWindowHours >= 24 {
			return fmt.Errorf("eating window must be between 1 and 23 hours")
		}
		profile.EatingWindowHours = *c.EatingWindowHours
		updated = true
	}
	if c.DefaultProtocol != nil {
		proto, err := cli.ParseProtocol(*c.DefaultProtocol)
		if err != nil {
			return err
		}
		profile.DefaultProtocol = proto.Name
		updated = true
	}
	if c.NotificationGraceMin != nil {
		if *c.NotificationGraceMin < 0 {
			return fmt.Errorf("notification grace period cannot be negative")
		}
		profile.NotificationGracePeriodMin = *c.NotificationGraceMin
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveProfile(profile); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		fmt.Println("Profile updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view the profile or flags to update it.")
	}

	return nil
}
