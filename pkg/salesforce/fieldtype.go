package salesforce

import "fmt"

// FormatFieldType renders a field's type code and size attributes into the
// display label used across the inspection tools. Unknown type codes pass
// through verbatim.
func FormatFieldType(f Field) string {
	switch f.Type {
	case "string", "encryptedstring":
		return fmt.Sprintf("Text(%d)", f.Length)
	case "textarea":
		return fmt.Sprintf("TextArea(%d)", f.Length)
	case "double":
		return fmt.Sprintf("Number(%d,%d)", f.Precision, f.Scale)
	case "currency":
		return fmt.Sprintf("Currency(%d,%d)", f.Precision, f.Scale)
	case "percent":
		return fmt.Sprintf("Percent(%d,%d)", f.Precision, f.Scale)
	case "int":
		return fmt.Sprintf("Number(%d,0)", f.Precision)
	case "boolean":
		return "Checkbox"
	case "date":
		return "Date"
	case "datetime":
		return "DateTime"
	case "time":
		return "Time"
	case "reference":
		return "Lookup"
	case "picklist":
		return "Picklist"
	case "multipicklist":
		return "MultiPicklist"
	case "phone":
		return "Phone"
	case "email":
		return "Email"
	case "url":
		return fmt.Sprintf("URL(%d)", f.Length)
	case "id":
		return "Id"
	default:
		return f.Type
	}
}
