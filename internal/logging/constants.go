package logging

// Standardized field names for structured logging.
const (
	FieldOperation        = "operation"
	FieldAmortizationType = "amortization_type"
	FieldPrincipal        = "principal"
	FieldPayment          = "payment"
	FieldPeriods          = "periods"
	FieldInterest         = "interest_percent"
	FieldOverpayment      = "overpayment"
	FieldOutputFormat     = "output_format"
	FieldConfigFile       = "config_file"
	FieldStatus           = "status"
	FieldComponent        = "component"
	FieldInput            = "input"
	FieldLine             = "line"
	FieldRows             = "rows"
	FieldRejected         = "rejected"
)
