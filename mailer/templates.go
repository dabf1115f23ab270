package mailer

import (
	"fmt"
	"strings"

	"nexusmarket/engine"
	"nexusmarket/models"
)

// Render produces the subject and HTML body for an engine notification.
func Render(n engine.Notification) (subject, html string) {
	switch n.Kind {
	case engine.NotifyOutForDelivery:
		return OutForDelivery(n)
	case engine.NotifyDelivered:
		return Delivered(n)
	default:
		return "", ""
	}
}

// OutForDelivery is the OTP email sent when a package leaves for delivery.
func OutForDelivery(n engine.Notification) (subject, html string) {
	subject = fmt.Sprintf("Out for Delivery: OTP for Order #%s", n.Order.OrderID)
	html = fmt.Sprintf(
		`<div style="font-family: 'Segoe UI', Tahoma, sans-serif; max-width: 600px; margin: 0 auto; border: 1px solid #e0e0e0; border-radius: 8px; overflow: hidden;">
<div style="background: linear-gradient(90deg, #4f46e5, #7c3aed); padding: 20px; text-align: center; color: white;"><h2 style="margin: 0;">Out for Delivery</h2></div>
<div style="padding: 25px; background-color: #ffffff;">
<p style="font-size: 16px; color: #333;">Hello <strong>%s</strong>,</p>
<p style="color: #555;">Your package is out for delivery today! Please share the OTP below with the delivery agent.</p>
<div style="background-color: #f3f4f6; padding: 15px; text-align: center; border-radius: 8px; margin: 20px 0;">
<span style="display: block; font-size: 12px; color: #6b7280; text-transform: uppercase; letter-spacing: 1px;">Your Delivery OTP</span>
<span style="display: block; font-size: 32px; font-weight: bold; color: #111; letter-spacing: 5px; margin-top: 5px;">%s</span>
</div>
<p style="font-size: 14px; color: #888;">Order ID: #%s</p>
</div></div>`,
		n.UserName, n.Order.DeliveryOTP, n.Order.OrderID,
	)
	return subject, html
}

// Delivered is the consolidated receipt sent once an order arrives: itemized
// summary, total, delivery address and the points earned.
func Delivered(n engine.Notification) (subject, html string) {
	subject = fmt.Sprintf("Delivered: Order #%s was successful", n.Order.OrderID)

	var rows strings.Builder
	for _, item := range n.Order.Items {
		rows.WriteString(fmt.Sprintf(
			`<tr style="border-bottom: 1px solid #eee;"><td style="padding: 12px 10px; font-size: 14px; color: #333;"><strong>%s</strong><div style="font-size: 12px; color: #777;">Qty: %d</div></td><td style="padding: 12px 5px; text-align: right; font-weight: bold; color: #333;">&#8377;%.2f</td></tr>`,
			item.Name, item.Qty(), item.UnitPrice()*float64(item.Qty()),
		))
	}

	addr := n.Order.ShippingAddress
	addressStr := fmt.Sprintf("%s<br>%s<br>%s, %s - %s<br>Phone: %s",
		addr.Name, addr.Address, addr.City, addr.State, addr.Pincode, addr.Mobile)

	html = fmt.Sprintf(
		`<div style="font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; max-width: 600px; margin: 0 auto; border: 1px solid #e0e0e0; border-radius: 8px; overflow: hidden; background-color: #fafafa;">
<div style="background-color: #10b981; padding: 25px; text-align: center; color: white;"><h1 style="margin: 0; font-size: 26px;">Delivery Successful!</h1><p style="margin: 5px 0 0 0; opacity: 0.9;">Your package has arrived safely.</p></div>
<div style="background-color: #ecfdf5; border-bottom: 1px solid #d1fae5; padding: 15px; text-align: center;"><p style="margin: 0; font-size: 16px; color: #065f46;">You earned <strong>%d Reward Points</strong> on this order!</p></div>
<div style="padding: 30px; background-color: #ffffff;">
<p style="margin-top: 0; color: #444;">Hi %s,</p>
<p style="color: #666;">We are happy to inform you that your order <strong>#%s</strong> has been delivered.</p>
<h3 style="font-size: 14px; text-transform: uppercase; color: #888; border-bottom: 2px solid #eee; padding-bottom: 5px;">Items Delivered</h3>
<table style="width: 100%%; border-collapse: collapse; margin-bottom: 20px;">%s</table>
<div style="background-color: #f9fafb; padding: 15px; border-radius: 6px; border: 1px solid #eee;"><span style="font-weight: bold; color: #333;">Total Amount Paid</span> <span style="font-weight: bold; color: #4f46e5; font-size: 18px;">&#8377;%.2f</span></div>
<h3 style="font-size: 14px; text-transform: uppercase; color: #888; border-bottom: 2px solid #eee; padding-bottom: 5px; margin-top: 30px;">Delivered To</h3>
<p style="font-size: 14px; color: #444; background: #fff; border: 1px solid #eee; padding: 15px; border-radius: 6px;">%s</p>
</div>
<div style="padding: 20px; text-align: center; color: #999; font-size: 12px; border-top: 1px solid #eee;"><p>Thank you for shopping with NexusMarket.</p></div>
</div>`,
		n.PointsEarned, n.UserName, n.Order.OrderID, rows.String(), n.Order.TotalAmount, addressStr,
	)
	return subject, html
}

// OrderConfirmation is sent when an order is placed.
func OrderConfirmation(order models.Order) (subject, html string) {
	subject = fmt.Sprintf("Your NexusMarket Order Confirmation #%s", order.OrderID)

	var rows strings.Builder
	for _, item := range order.Items {
		rows.WriteString(fmt.Sprintf(
			`<tr style="border-bottom: 1px solid #ddd;"><td style="padding: 10px;">%s (x%d)</td><td style="padding: 10px; text-align: right;">&#8377;%.2f</td></tr>`,
			item.Name, item.Qty(), item.UnitPrice()*float64(item.Qty()),
		))
	}

	addr := order.ShippingAddress
	html = fmt.Sprintf(
		`<div style="font-family: sans-serif; max-width: 600px; margin: auto; border: 1px solid #eee; padding: 20px;">
<h1>Thank you for your order!</h1>
<p><strong>Order ID:</strong> %s</p>
<p><strong>Order Date:</strong> %s</p>
<p><strong>Estimated Delivery:</strong> %s</p>
<hr><h2 style="color: #333;">Order Summary</h2>
<table style="width: 100%%; border-collapse: collapse;">%s<tr style="font-weight: bold;"><td style="padding: 10px;">Total</td><td style="padding: 10px; text-align: right;">&#8377;%.2f</td></tr></table>
<hr><p><strong>Shipping Address:</strong><br>%s<br>%s, %s<br>%s, %s</p>
</div>`,
		order.OrderID, displayDate(order.OrderDate), displayDay(order.EstimatedDelivery),
		rows.String(), order.TotalAmount,
		addr.Name, addr.Address, addr.City, addr.State, addr.Pincode,
	)
	return subject, html
}

// Cancellation confirms that an order was cancelled and its items removed.
func Cancellation(userName string, order models.Order) (subject, html string) {
	subject = fmt.Sprintf("Your NexusMarket Order #%s has been cancelled", order.OrderID)

	var items strings.Builder
	for _, item := range order.Items {
		items.WriteString(fmt.Sprintf("<li>%s (Qty: %d)</li>", item.Name, item.Qty()))
	}
	html = fmt.Sprintf(
		`<div style="font-family: sans-serif;"><p>Hi %s, this is a confirmation that your order <b>#%s</b> has been successfully cancelled.</p><p>The following items have been removed from your order:</p><ul>%s</ul><p>Any payments made will be refunded according to our policy.</p></div>`,
		userName, order.OrderID, items.String(),
	)
	return subject, html
}

// Welcome is sent once after a successful signup.
func Welcome(name string) (subject, html string) {
	subject = "Welcome to NexusMarket! Your Account is Ready."
	html = fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; border: 1px solid #eee; padding: 20px; border-radius: 8px; text-align: center; color: #333;"><h1 style="color: #4f46e5;">Welcome to NexusMarket, %s!</h1><p style="font-size: 16px;">Your account has been successfully created. We're thrilled to have you join our community.</p><p style="font-size: 16px;">You can now sign in using your credentials and start exploring thousands of products.</p></div>`,
		name,
	)
	return subject, html
}

// VerificationCode is the generic six-digit code email used by the signup and
// password-reset flows.
func VerificationCode(heading, otp string) (subject, html string) {
	subject = fmt.Sprintf("Your NexusMarket %s Code", heading)
	html = fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; text-align: center; padding: 20px;"><h2>%s</h2><p>Your verification code is:</p><p style="font-size: 28px; font-weight: bold; letter-spacing: 5px; background: #f0f0f0; padding: 10px; border-radius: 5px;">%s</p><p>This code does not expire.</p></div>`,
		heading, otp,
	)
	return subject, html
}

// ReturnOTP carries the code confirming a return request for one item.
func ReturnOTP(itemName, otp string) (subject, html string) {
	subject = "Your NexusMarket Return Verification Code"
	html = fmt.Sprintf(
		`<p>Your One-Time Password (OTP) to confirm your return for <b>%s</b> is:</p><h1 style="font-size: 36px; letter-spacing: 5px;">%s</h1><p>This code does not expire.</p>`,
		itemName, otp,
	)
	return subject, html
}

// ReturnConfirmed acknowledges a finalized return.
func ReturnConfirmed(userName, itemName, reason string) (subject, html string) {
	subject = fmt.Sprintf("Return Confirmed for %q", itemName)
	html = fmt.Sprintf(
		`<p>Hi %s,</p><p>This email confirms that your return for <b>%s</b> has been successfully processed.</p><p><b>Reason provided:</b> %s</p><p>Your refund will be processed shortly.</p>`,
		userName, itemName, reason,
	)
	return subject, html
}

// DiscountCode carries a student-discount verification code for one product.
func DiscountCode(productName, code string) (subject, html string) {
	subject = "Your NexusMarket Discount Code"
	html = fmt.Sprintf(
		`<p>Your verification code for the discount on <b>%s</b> is:</p><h1 style="font-size: 36px; letter-spacing: 5px;">%s</h1><p>This code does not expire.</p>`,
		productName, code,
	)
	return subject, html
}

// SupportTicket formats a customer message for the support inbox.
func SupportTicket(user models.User, category, message string) (subject, html string) {
	subject = fmt.Sprintf("[Support Ticket] - %s from %s", category, user.Name)
	html = fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 20px auto; border: 1px solid #ddd; border-radius: 8px; overflow: hidden;">
<div style="background-color: #4f46e5; color: white; padding: 20px; text-align: center;"><h1 style="margin: 0; font-size: 24px;">New Customer Support Ticket</h1></div>
<div style="padding: 20px;">
<h2 style="color: #4f46e5; border-bottom: 2px solid #eee; padding-bottom: 10px;">User Information</h2>
<p><strong>Name:</strong> %s</p><p><strong>Email:</strong> %s</p><p><strong>Phone:</strong> %s</p>
<p><em>(Click 'Reply' to respond directly to this user)</em></p>
<h2 style="color: #4f46e5; border-bottom: 2px solid #eee; padding-bottom: 10px; margin-top: 30px;">Issue Details</h2>
<p><strong>Category:</strong> %s</p><p><strong>Message:</strong></p>
<div style="background-color: #f9f9f9; padding: 15px; border-radius: 5px; border: 1px solid #eee;"><p style="margin: 0; white-space: pre-wrap;">%s</p></div>
</div>
<div style="background-color: #f4f4f4; color: #777; padding: 15px; text-align: center; font-size: 12px;"><p>This is an automated message from the NexusMarket system.</p></div>
</div>`,
		user.Name, user.Email, user.Phone, category, message,
	)
	return subject, html
}
