package main

import (
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"

	"shopmanager/internal/database"
	pauth "shopmanager/internal/platform/auth"
	"shopmanager/pkg/utils"
)

var (
	apiBaseURL string
	authToken  string
)

type ResponseError struct {
	Message string `json:"message"`
}

var apiServiceBase = func() *resty.Client {
	client := resty.New().
		SetBaseURL(apiBaseURL).
		SetHeader("Accept", "application/json").
		SetError(&ResponseError{}).
		OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
			if resp.StatusCode() >= 400 {
				return fmt.Errorf("%s", resp.Error().(*ResponseError).Message)
			}

			return nil
		})

	if authToken != "" {
		client.SetAuthToken(authToken)
	}

	return client
}

var rootCmd = &cobra.Command{
	Use:   "shopmanager",
	Short: "ShopManager CLI",
}

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Sign in and print a bearer token",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := apiServiceBase().R().
			SetBody(map[string]string{
				"email":    args[0],
				"password": args[1],
			}).
			SetResult(&pauth.AuthResult{}).
			Post("/auth/login")

		if err != nil {
			fmt.Println("Error:", err)
			return
		}

		result := resp.Result().(*pauth.AuthResult)

		fmt.Println("User ID :", result.User.ID)
		fmt.Println("Email   :", result.User.Email)
		fmt.Println("Role    :", result.User.Role)
		fmt.Println("Token   :", result.Token)
	},
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create <email>",
	Short: "Create a new user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		email := args[0]
		role, _ := cmd.Flags().GetString("role")
		password := utils.GenerateRandomString(10) + "aA1!"

		resp, err := apiServiceBase().R().
			SetBody(map[string]any{
				"email":      email,
				"password":   password,
				"first_name": "New",
				"last_name":  "User",
				"role":       role,
			}).
			SetResult(&database.User{}).
			Post("/users")

		if err != nil {
			fmt.Println("Error:", err)
			return
		}

		user := resp.Result().(*database.User)

		fmt.Println("User ID  :", user.ID)
		fmt.Println("Email    :", user.Email)
		fmt.Println("Role     :", user.Role)
		fmt.Println("Password :", password)
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := apiServiceBase().R().
			SetResult(&[]database.User{}).
			Get("/users")

		if err != nil {
			fmt.Println("Error:", err)
			return
		}

		users := resp.Result().(*[]database.User)

		for _, user := range *users {
			fmt.Printf("%-5d %-40s %-10s active=%v\n", user.ID, user.Email, user.Role, user.IsActive)
		}
	},
}

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage the product catalog",
}

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := apiServiceBase().R().
			SetResult(&[]database.Product{}).
			Get("/product")

		if err != nil {
			fmt.Println("Error:", err)
			return
		}

		products := resp.Result().(*[]database.Product)

		for _, product := range *products {
			fmt.Printf("%-20s %-40s %10s %s\n", product.Code, product.Name, product.RefPrice, product.Unit)
		}
	},
}

func main() {
	userCreateCmd.Flags().String("role", "User", "Role for the new user")

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userListCmd)
	productCmd.AddCommand(productListCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(productCmd)

	rootCmd.PersistentFlags().StringVarP(&apiBaseURL, "api", "a", "http://localhost:3000/api", "API base URL")
	rootCmd.PersistentFlags().StringVarP(&authToken, "token", "t", "", "Bearer token")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
