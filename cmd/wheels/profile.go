package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wheels/wheels-go/internal/api"
	"github.com/wheels/wheels-go/internal/models"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := a.session.RequireUser(); err != nil {
			return friendly(err)
		}
		user, err := api.NewProfileService(a.client).Get(cmd.Context())
		if err != nil {
			// fall back to the locally cached record when the server
			// cannot be asked
			if cached := a.session.User(); cached != nil {
				printProfile(*cached)
				fmt.Printf("(cached copy; %v)\n", friendly(err))
				return nil
			}
			return friendly(err)
		}
		printProfile(user)
		return nil
	},
}

var (
	profileName     string
	profilePhone    string
	profilePassword string
	profilePhoto    string
)

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := a.session.RequireUser(); err != nil {
			return friendly(err)
		}
		if profileName == "" && profilePhone == "" && profilePassword == "" && profilePhoto == "" {
			return fmt.Errorf("nothing to update")
		}
		user, err := api.NewProfileService(a.client).Update(cmd.Context(), api.UpdateProfile{
			Name:      profileName,
			Phone:     profilePhone,
			Password:  profilePassword,
			PhotoPath: profilePhoto,
		})
		if err != nil {
			return friendly(err)
		}
		a.session.SetUser(user)
		fmt.Println("Profile updated")
		return nil
	},
}

func printProfile(u models.User) {
	fmt.Printf("Name:  %s\n", u.Name)
	fmt.Printf("Email: %s\n", u.Email)
	if u.Phone != "" {
		fmt.Printf("Phone: %s\n", u.Phone)
	}
	if u.PhotoRef != "" {
		fmt.Printf("Photo: %s\n", api.ImageURL(a.cfg.APIBaseURL, u.PhotoRef))
	}
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileName, "name", "", "display name")
	profileUpdateCmd.Flags().StringVar(&profilePhone, "phone", "", "phone number")
	profileUpdateCmd.Flags().StringVar(&profilePassword, "password", "", "new password")
	profileUpdateCmd.Flags().StringVar(&profilePhoto, "photo", "", "photo file to upload")

	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}
