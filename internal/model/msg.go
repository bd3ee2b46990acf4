package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// DashboardLoadedMsg is sent when the dashboard summary is computed.
type DashboardLoadedMsg struct {
	Stats    DashboardStats
	LowStock []Product
	Recent   []SalesRecord
}

// ProductsLoadedMsg is sent when the product catalogue is fetched.
type ProductsLoadedMsg struct {
	Products []Product
}

// ForecastsLoadedMsg is sent when a forecast fetch for a window completes.
// Days tags the window the fetch was started for.
type ForecastsLoadedMsg struct {
	Days      int
	Forecasts []ProductForecast
	Err       error
}

// SalesLoadedMsg is sent when sales records are loaded.
type SalesLoadedMsg struct {
	Records []SalesRecord
}

// PurchaseOrdersLoadedMsg is sent when purchase orders are loaded.
type PurchaseOrdersLoadedMsg struct {
	Orders []PurchaseOrder
}

// PurchaseOrderDetailLoadedMsg is sent when a purchase order detail is loaded.
type PurchaseOrderDetailLoadedMsg struct {
	Order PurchaseOrder
}

// ContactsLoadedMsg is sent when vendors or customers are loaded.
type ContactsLoadedMsg struct {
	Kind     string
	Contacts []Contact
}

// SettingsLoadedMsg is sent when the account and profile are loaded.
type SettingsLoadedMsg struct {
	Account Account
	Profile Profile
}

// SalesRecordSavedMsg is sent when a sale is recorded. Local is false when
// the record went to the REST service and cannot be undone.
type SalesRecordSavedMsg struct {
	Record SalesRecord
	Local  bool
}

// PurchaseOrderSavedMsg is sent when a purchase order is successfully saved.
type PurchaseOrderSavedMsg struct {
	ID        string
	Operation string // insert, update
	Before    *PurchaseOrder
	After     PurchaseOrder
}

// PurchaseOrderStatusMsg is sent when an order is marked received or reopened.
type PurchaseOrderStatusMsg struct {
	ID     string
	Before string
	After  string
}

// ContactSavedMsg is sent when a vendor or customer is successfully saved.
type ContactSavedMsg struct {
	ID        int64
	Operation string // insert, update
	Before    *Contact
	After     Contact
}

// AccountSavedMsg is sent when the account form is saved.
type AccountSavedMsg struct {
	Before Account
	After  Account
}

// ProfileSavedMsg is sent when the profile form is saved.
type ProfileSavedMsg struct {
	Before Profile
	After  Profile
}

// FormCancelledMsg is sent when a form is cancelled.
type FormCancelledMsg struct{}

// DeletePurchaseOrderMsg is sent after a purchase order is deleted.
type DeletePurchaseOrderMsg struct {
	ID      string
	Deleted PurchaseOrder
}

// DeleteContactMsg is sent after a vendor or customer is deleted.
type DeleteContactMsg struct {
	ID      int64
	Deleted Contact
}

// DeleteSalesRecordMsg is sent after a sales record is deleted.
type DeleteSalesRecordMsg struct {
	ID      string
	Deleted SalesRecord
}

// ExportedMsg is sent when a table export is written.
type ExportedMsg struct {
	Path string
	Rows int
}

// Screen represents different app screens.
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenInventory
	ScreenSales
	ScreenPurchaseOrders
	ScreenVendors
	ScreenCustomers
	ScreenAccount
	ScreenPurchaseOrderDetail
	ScreenSalesForm
	ScreenPurchaseOrderForm
	ScreenContactForm
	ScreenAccountForm
	ScreenProfileForm
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeInsert
	ModeFilter
)
