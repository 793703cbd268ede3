package notifier

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type SMSResponse struct {
	SMSMessageData struct {
		Message    string `json:"Message"`
		Recipients []struct {
			StatusCode int    `json:"statusCode"`
			Number     string `json:"number"`
			Cost       string `json:"cost"`
			Status     string `json:"status"`
			MessageID  string `json:"messageId"`
		} `json:"Recipients"`
	} `json:"SMSMessageData"`
}

// SendSMS delivers an order confirmation through the Africa's Talking
// messaging API.
func (n *Notifier) SendSMS(toPhoneNumber string, orderRef string, totalAmount float64) error {

	if toPhoneNumber == "" {
		return fmt.Errorf("recipient phone number is empty")
	}

	message := fmt.Sprintf("Your order %s has been successfully placed! Total: EGP %.2f. Thank you for shopping with us!", orderRef, totalAmount)

	data := url.Values{}
	data.Set("username", n.sms.Username)
	data.Set("to", toPhoneNumber)
	data.Set("message", message)
	data.Set("from", n.sms.SenderID)

	client := &http.Client{}
	req, err := http.NewRequest("POST", n.sms.SMSURL, strings.NewReader(data.Encode()))

	if err != nil {
		return fmt.Errorf("failed to create SMS request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apikey", n.sms.APIKey)

	resp, err := client.Do(req)

	if err != nil {
		return fmt.Errorf("SMS send failed: %w", err)
	}

	defer resp.Body.Close()

	var smsResp SMSResponse
	if err := json.NewDecoder(resp.Body).Decode(&smsResp); err != nil {
		return fmt.Errorf("failed to decode SMS response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("SMS API returned non-success status %d: %s", resp.StatusCode, smsResp.SMSMessageData.Message)
	}

	return nil
}
