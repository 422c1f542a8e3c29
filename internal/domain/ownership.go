package domain

// Ownership accessors consumed by the authorization gate. An empty ID means
// the resource has no owner of that kind.

func (c *Candidate) OwnerPartnerID() string { return c.SubmittedBy }
func (c *Candidate) OwnerCompanyID() string { return c.CompanyID }

func (j *Job) OwnerPartnerID() string { return "" }
func (j *Job) OwnerCompanyID() string { return j.CompanyID }

func (p *Payout) OwnerPartnerID() string { return p.PartnerID }
func (p *Payout) OwnerCompanyID() string { return p.CompanyID }
