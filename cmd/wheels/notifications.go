package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wheels/wheels-go/internal/api"
	"github.com/wheels/wheels-go/internal/notify"
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notif"},
	Short:   "Read and watch notifications",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := api.NewNotificationService(a.client).List(cmd.Context())
		if err != nil {
			return friendly(err)
		}
		if len(list) == 0 {
			fmt.Println("No notifications")
			return nil
		}
		for _, n := range list {
			marker := " "
			if !n.Read {
				marker = "*"
			}
			fmt.Printf("%s %d\t%s\t%s\n", marker, n.ID,
				n.CreatedAt.Format("2006-01-02 15:04"), n.Message)
		}
		return nil
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <notification-id|all>",
	Short: "Mark notifications as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := api.NewNotificationService(a.client)
		if args[0] == "all" {
			if err := svc.MarkAllRead(cmd.Context()); err != nil {
				return friendly(err)
			}
			fmt.Println("All notifications marked read")
			return nil
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := svc.MarkRead(cmd.Context(), id); err != nil {
			return friendly(err)
		}
		fmt.Printf("Notification #%d marked read\n", id)
		return nil
	},
}

var notificationsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll for unread notifications until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := a.session.RequireUser(); err != nil {
			return friendly(err)
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		poller := &notify.Poller{
			Counter:  api.NewNotificationService(a.client),
			Interval: a.cfg.PollInterval,
			OnCount: func(count int) {
				fmt.Printf("%d unread notification(s)\n", count)
			},
		}
		fmt.Printf("Watching every %s, Ctrl-C to stop\n", a.cfg.PollInterval)
		poller.Run(ctx)
		return nil
	},
}

func init() {
	notificationsCmd.AddCommand(notificationsListCmd, notificationsReadCmd, notificationsWatchCmd)
	rootCmd.AddCommand(notificationsCmd)
}
