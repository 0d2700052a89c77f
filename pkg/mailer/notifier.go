package mailer

import (
	"go.uber.org/zap"

	"staffly/models"
	"staffly/pkg/period"
)

// Notifier turns domain events into mail.
type Notifier struct {
	d   *Dispatcher
	log *zap.Logger
}

func NewNotifier(d *Dispatcher, log *zap.Logger) *Notifier {
	return &Notifier{d: d, log: log}
}

func (n *Notifier) send(to, subject, tmpl string, data interface{}) {
	body, err := render(tmpl, data)
	if err != nil {
		n.log.Error("failed to render mail", zap.String("template", tmpl), zap.Error(err))
		return
	}
	n.d.Dispatch(to, subject, body)
}

func (n *Notifier) Welcome(emp *models.Employee) {
	n.send(emp.Email, "Welcome to Staffly!", "welcome", map[string]string{
		"Heading": "Welcome to Staffly!",
		"Name":    emp.Name,
		"Email":   emp.Email,
		"Role":    emp.Role,
	})
}

func (n *Notifier) LeaveStatusUpdated(emp *models.Employee, leave *models.LeaveRequest) {
	n.send(emp.Email, "Leave Request Update", "leave_status", map[string]string{
		"Heading":   "Leave Request Update",
		"Name":      emp.Name,
		"LeaveType": leave.Type,
		"Status":    leave.Status,
		"From":      leave.FromDate.Format(period.DateLayout),
		"To":        leave.ToDate.Format(period.DateLayout),
	})
}

func (n *Notifier) NewLeaveRequest(admin, emp *models.Employee, leave *models.LeaveRequest) {
	n.send(admin.Email, "New Leave Request", "new_leave", map[string]string{
		"Heading":   "New Leave Request",
		"Name":      admin.Name,
		"Employee":  emp.Name,
		"LeaveType": leave.Type,
		"Reason":    leave.Reason,
		"From":      leave.FromDate.Format(period.DateLayout),
		"To":        leave.ToDate.Format(period.DateLayout),
	})
}

func (n *Notifier) PayrollGenerated(emp *models.Employee, p *models.Payroll) {
	n.payroll(emp, p, "Payroll Generated", "generated")
}

func (n *Notifier) PayrollPaid(emp *models.Employee, p *models.Payroll) {
	n.payroll(emp, p, "Payroll Paid", "paid out")
}

func (n *Notifier) payroll(emp *models.Employee, p *models.Payroll, heading, action string) {
	n.send(emp.Email, heading, "payroll", map[string]interface{}{
		"Heading": heading,
		"Name":    emp.Name,
		"Month":   p.Month,
		"Action":  action,
		"NetPay":  models.FormatMoney(p.NetPay),
		"Status":  p.Status,
	})
}
