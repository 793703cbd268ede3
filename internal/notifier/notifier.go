package notifier

import (
	"go.uber.org/zap"

	config "github.com/Ramy-Emad2022/ecommerce-backend/configs"
	"github.com/Ramy-Emad2022/ecommerce-backend/internal/models"
)

// Notifier sends order confirmations over SMS and email. Delivery is
// best-effort: failures are logged and never surface to the request.
type Notifier struct {
	sms   config.AfricaTalkingConfig
	email config.EmailConfig
	log   *zap.Logger
}

func New(sms config.AfricaTalkingConfig, email config.EmailConfig, log *zap.Logger) *Notifier {
	return &Notifier{sms: sms, email: email, log: log}
}

// OrderConfirmation fires both channels in the background.
func (n *Notifier) OrderConfirmation(user models.User, orderRef string, totalAmount float64) {

	go func() {
		if err := n.SendSMS(user.Phone, orderRef, totalAmount); err != nil {
			n.log.Warn("order confirmation SMS failed",
				zap.String("order_ref", orderRef),
				zap.String("phone", user.Phone),
				zap.Error(err),
			)
		}
	}()

	go func() {
		if err := n.SendEmail(user.Email, user.Username, orderRef, totalAmount); err != nil {
			n.log.Warn("order confirmation email failed",
				zap.String("order_ref", orderRef),
				zap.String("email", user.Email),
				zap.Error(err),
			)
		}
	}()
}
