package payroll

const (
	WarningNegativeNet = "negative_net"

	ElementTypeEarning   = "earning"
	ElementTypeDeduction = "deduction"

	FieldBasicSalary        = "basicSalary"
	FieldHousingAllowance   = "housingAllowance"
	FieldTransportAllowance = "transportAllowance"
	FieldOtherAllowances    = "otherAllowances"
	FieldBonus              = "bonus"

	DeductionHealthInsurance = "healthInsurance"
	DeductionOther           = "otherDeductions"

	DefaultHealthInsurance = 500
)
