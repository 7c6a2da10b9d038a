// Package email sends transactional messages through a provider-agnostic
// EmailSender.
//
// PostmarkClient delivers through the Postmark API. DevSender writes each
// message to a directory for local inspection. NewFromConfig picks between
// them based on whether Postmark tokens are configured:
//
//	sender, err := email.NewFromConfig(cfg)
//	if err != nil {
//	    return err
//	}
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//	    SendTo:   "reader@example.com",
//	    Subject:  "Issue #1",
//	    BodyHTML: "<p>Hello</p>",
//	    BodyText: "Hello",
//	    Tag:      "newsletter",
//	})
//
// Every implementation validates SendEmailParams before doing any work and
// reports failures as ErrInvalidParams or ErrFailedToSendEmail.
package email
