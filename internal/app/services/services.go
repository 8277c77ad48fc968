package services

// Services defined in this package:
// - AuthService: login accounts, token issuance and refresh, signup
// - PersonService: registered people, self-registration, admin CRUD
// - EventService: event CRUD and the public upcoming listing
// - CheckinService: kiosk attendance by phone number
// - CompanyService: company directory, CRUD and image uploads
// - ProfileService: the authenticated participant's own data
