package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	token   string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gowallet-cli",
		Short: "GoWallet CLI tool",
		Long:  `A command line interface for interacting with the GoWallet API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoWallet API")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("GOWALLET_TOKEN"), "Bearer token for authenticated endpoints")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Transfer command
	var sender, receiver, amount string
	transferCmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move funds between two wallet accounts",
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/transfers", map[string]any{
				"sender_account_number":   sender,
				"receiver_account_number": receiver,
				"amount":                  amount,
			})
		},
	}
	transferCmd.Flags().StringVar(&sender, "from", "", "Sender account number")
	transferCmd.Flags().StringVar(&receiver, "to", "", "Receiver account number")
	transferCmd.Flags().StringVar(&amount, "amount", "", "Amount to transfer")
	transferCmd.MarkFlagRequired("from")
	transferCmd.MarkFlagRequired("to")
	transferCmd.MarkFlagRequired("amount")
	rootCmd.AddCommand(transferCmd)

	// Deposit commands
	var depositEmail, depositAmount string
	depositCmd := &cobra.Command{
		Use:   "deposit",
		Short: "Deposit operations",
	}

	depositInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a deposit through the payment provider",
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/payments/deposit", map[string]any{
				"email":  depositEmail,
				"amount": depositAmount,
			})
		},
	}
	depositInitCmd.Flags().StringVar(&depositEmail, "email", "", "User email")
	depositInitCmd.Flags().StringVar(&depositAmount, "amount", "", "Amount to deposit")
	depositInitCmd.MarkFlagRequired("email")
	depositInitCmd.MarkFlagRequired("amount")

	var depositRef string
	depositVerifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a deposit with the payment provider",
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/payments/deposit/verify?reference=" + depositRef)
		},
	}
	depositVerifyCmd.Flags().StringVar(&depositRef, "reference", "", "Provider reference")
	depositVerifyCmd.MarkFlagRequired("reference")

	depositCmd.AddCommand(depositInitCmd, depositVerifyCmd)
	rootCmd.AddCommand(depositCmd)

	// Balance command
	var accountID string
	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Read an account balance",
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/accounts/" + accountID + "/balance")
		},
	}
	balanceCmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	balanceCmd.MarkFlagRequired("account")
	rootCmd.AddCommand(balanceCmd)

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	}

	ledgerCmd.AddCommand(consistencyCmd)
	rootCmd.AddCommand(ledgerCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func doRequest(method, path string, payload any) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 300 {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(respBody))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, respBody, "", "  "); err != nil {
		fmt.Println(string(respBody))
		return
	}
	fmt.Println(pretty.String())
}

func doPost(path string, payload any) {
	doRequest(http.MethodPost, path, payload)
}

func doGet(path string) {
	doRequest(http.MethodGet, path, nil)
}

func checkConsistency() {
	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/v1/transactions/consistency", nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Consistency check PASSED\n")
	if consistent, ok := result["consistent"].(bool); ok {
		fmt.Printf("Consistent: %v\n", consistent)
	}
	fmt.Printf("Total debits:  %v\n", result["total_debits"])
	fmt.Printf("Total credits: %v\n", result["total_credits"])
}
