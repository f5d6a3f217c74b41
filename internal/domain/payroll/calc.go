package payroll

import "github.com/shopspring/decimal"

// DefaultWorkingDays is assumed when a generation request carries no
// attendance figures.
const DefaultWorkingDays = 22

var (
	hraRate       = decimal.RequireFromString("0.40")
	pfRate        = decimal.RequireFromString("0.12")
	esiRate       = decimal.RequireFromString("0.0175")
	insuranceRate = decimal.RequireFromString("0.02")

	transportAllowance = decimal.NewFromInt(2000)
	medicalAllowance   = decimal.NewFromInt(1500)
	professionalTax    = decimal.NewFromInt(200)

	monthsPerYear = decimal.NewFromInt(12)

	taxSlab1Limit = decimal.NewFromInt(250000)
	taxSlab2Limit = decimal.NewFromInt(500000)
	taxSlab3Limit = decimal.NewFromInt(1000000)
	taxSlab2Rate  = decimal.RequireFromString("0.05")
	taxSlab3Rate  = decimal.RequireFromString("0.20")
	taxSlab4Rate  = decimal.RequireFromString("0.30")
	taxSlab3Base  = decimal.NewFromInt(12500)
	taxSlab4Base  = decimal.NewFromInt(112500)
)

// CalcInput carries the variable figures of a payroll computation. All
// remaining components are derived from the basic salary.
type CalcInput struct {
	BasicSalary     decimal.Decimal
	OtherAllowances decimal.Decimal
	OtherDeductions decimal.Decimal
	WorkingDays     int
	PresentDays     int
}

// Breakdown is the full derived pay structure for one period.
type Breakdown struct {
	HouseRentAllowance decimal.Decimal
	TransportAllowance decimal.Decimal
	MedicalAllowance   decimal.Decimal
	GrossSalary        decimal.Decimal

	ProvidentFund   decimal.Decimal
	ESI             decimal.Decimal
	ProfessionalTax decimal.Decimal
	IncomeTax       decimal.Decimal
	Insurance       decimal.Decimal
	TotalDeductions decimal.Decimal

	NetSalary decimal.Decimal
}

// Compute derives the complete pay breakdown from the input figures.
// The net salary is prorated by attendance: present days over working
// days, applied after all deductions.
func Compute(in CalcInput) Breakdown {
	var b Breakdown

	b.HouseRentAllowance = in.BasicSalary.Mul(hraRate)
	b.TransportAllowance = transportAllowance
	b.MedicalAllowance = medicalAllowance

	b.GrossSalary = in.BasicSalary.
		Add(b.HouseRentAllowance).
		Add(b.TransportAllowance).
		Add(b.MedicalAllowance).
		Add(in.OtherAllowances)

	b.ProvidentFund = b.GrossSalary.Mul(pfRate)
	b.ESI = b.GrossSalary.Mul(esiRate)
	b.ProfessionalTax = professionalTax
	b.IncomeTax = monthlyIncomeTax(b.GrossSalary)
	b.Insurance = b.GrossSalary.Mul(insuranceRate)

	b.TotalDeductions = b.ProvidentFund.
		Add(b.ESI).
		Add(b.ProfessionalTax).
		Add(b.IncomeTax).
		Add(b.Insurance).
		Add(in.OtherDeductions)

	net := b.GrossSalary.Sub(b.TotalDeductions)
	if in.WorkingDays > 0 {
		net = net.Mul(decimal.NewFromInt(int64(in.PresentDays))).
			Div(decimal.NewFromInt(int64(in.WorkingDays)))
	}
	b.NetSalary = net

	return b
}

// monthlyIncomeTax annualizes the gross salary, applies the progressive
// slab table and returns one twelfth of the annual liability.
func monthlyIncomeTax(grossSalary decimal.Decimal) decimal.Decimal {
	annual := grossSalary.Mul(monthsPerYear)

	var annualTax decimal.Decimal
	switch {
	case annual.LessThanOrEqual(taxSlab1Limit):
		annualTax = decimal.Zero
	case annual.LessThanOrEqual(taxSlab2Limit):
		annualTax = annual.Sub(taxSlab1Limit).Mul(taxSlab2Rate)
	case annual.LessThanOrEqual(taxSlab3Limit):
		annualTax = taxSlab3Base.Add(annual.Sub(taxSlab2Limit).Mul(taxSlab3Rate))
	default:
		annualTax = taxSlab4Base.Add(annual.Sub(taxSlab3Limit).Mul(taxSlab4Rate))
	}

	return annualTax.Div(monthsPerYear)
}
