package design

import (
	. "goa.design/goa/v3/dsl"
)

var _ = API("portfolio", func() {
	Title("Portfolio Contact API")
	Description("Contact form backend for a personal portfolio site")
	Version("1.0.0")
	Server("api", func() {
		Host("localhost", func() {
			URI("http://localhost:8000")
		})
	})
})

// Common reply envelope
var Reply = Type("Reply", func() {
	Description("Outcome of a contact or admin request")
	Attribute("success", Boolean, "Whether the request succeeded", func() {
		Example(false)
	})
	Attribute("message", String, "Human readable outcome", func() {
		Example("All fields are required")
	})
	Required("success", "message")
})

// Health check
var _ = Service("health", func() {
	Description("Health check service")

	Method("check", func() {
		Result(HealthResult)
		HTTP(func() {
			GET("/health")
			Response(StatusOK)
		})
	})
})

var HealthResult = ResultType("HealthResult", func() {
	Attribute("status", String, "Service status", func() {
		Example("healthy")
	})
	Attribute("service", String, "Service name", func() {
		Example("Portfolio Contact API")
	})
	Attribute("backend", String, "Active delivery backend", func() {
		Enum("mongo", "database", "smtp", "ses")
	})
	Required("status", "service", "backend")
})

// Contact form
var _ = Service("contact", func() {
	Description("Contact form submission")
	Error("bad_request", Reply)
	Error("server_error", Reply)

	Method("submit", func() {
		Description("Submit a contact form entry. Persisting backends answer 201, relaying backends 200.")
		Payload(ContactSubmitPayload)
		Result(Reply)
		Error("bad_request")
		Error("server_error")
		HTTP(func() {
			POST("/api/contact")
			POST("/contact")
			Response(StatusCreated)
			Response("bad_request", StatusBadRequest)
			Response("server_error", StatusInternalServerError)
		})
	})
})

var ContactSubmitPayload = Type("ContactSubmitPayload", func() {
	Attribute("name", String, "Full name", func() {
		Example("Ana")
	})
	Attribute("email", String, "Email address, checked only for presence", func() {
		Example("ana@x.com")
	})
	Attribute("message", String, "Message", func() {
		Example("Hi")
	})
})

// Admin
var JWTAuth = JWTSecurity("jwt", func() {
	Description("Bearer token issued by admin login")
	Scope("staff", "Read stored submissions")
})

var _ = Service("admin", func() {
	Description("Operator access to stored submissions")
	Error("unauthorized", Reply)
	Error("not_found", Reply)

	Method("login", func() {
		Description("Exchange admin credentials for a bearer token")
		Payload(LoginPayload)
		Result(LoginResult)
		Error("unauthorized")
		HTTP(func() {
			POST("/api/admin/login")
			Response(StatusOK)
			Response("unauthorized", StatusUnauthorized)
		})
	})

	Method("list_submissions", func() {
		Description("List stored submissions, newest first (persistence backends only)")
		Security(JWTAuth, func() {
			Scope("staff")
		})
		Payload(ListSubmissionsPayload)
		Result(ArrayOf(ContactInquiryResult))
		Error("unauthorized")
		Error("not_found")
		HTTP(func() {
			GET("/api/admin/submissions")
			Param("skip")
			Param("limit")
			Response(StatusOK)
			Response("unauthorized", StatusUnauthorized)
			Response("not_found", StatusNotFound)
		})
	})
})

var LoginPayload = Type("LoginPayload", func() {
	Attribute("username", String, "Admin username", func() {
		Example("admin")
	})
	Attribute("password", String, "Admin password", func() {
		Example("password")
	})
	Required("username", "password")
})

var LoginResult = ResultType("LoginResult", func() {
	Attribute("access_token", String, "JWT access token")
	Attribute("token_type", String, "Token type", func() {
		Example("bearer")
	})
	Attribute("expires_in", Int, "Token lifetime in seconds", func() {
		Example(1800)
	})
	Required("access_token", "token_type", "expires_in")
})

var ListSubmissionsPayload = Type("ListSubmissionsPayload", func() {
	Token("token", String, "JWT token")
	Attribute("skip", Int, "Skip records", func() {
		Default(0)
		Minimum(0)
	})
	Attribute("limit", Int, "Limit records", func() {
		Default(100)
		Minimum(1)
		Maximum(1000)
	})
})

var ContactInquiryResult = ResultType("ContactInquiryResult", func() {
	Attribute("id", String, "Inquiry ID")
	Attribute("name", String, "Full name")
	Attribute("email", String, "Email address")
	Attribute("message", String, "Message")
	Attribute("created_at", String, "Creation timestamp", func() {
		Format(FormatDateTime)
	})
	Attribute("updated_at", String, "Update timestamp", func() {
		Format(FormatDateTime)
	})
	Required("id", "name", "email", "message", "created_at")
})
