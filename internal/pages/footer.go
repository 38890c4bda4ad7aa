package pages

import (
	"github.com/sirupsen/logrus"

	"github.com/forkqa/webnextgen/internal/driver"
)

var footerChecks = []check{
	{"about page link", driver.CSS("[data-test='tf_web_footer_aboutUs']")},
	{"loyalty page link", driver.CSS("[data-test='tf_web_footer_loyaltyProgram']")},
	{"contact page link", driver.CSS("[data-test='tf_web_footer_contact']")},
	{"CGU page link", driver.CSS("[data-test='tf_web_footer_CGU']")},
	{"are you a restaurant page link", driver.CSS("[data-test='tf_web_footer_restaurant']")},
	{"cookie policy page link", driver.CSS("[data-test='tf_web_footer_cookiePolicy']")},
	{"cookie consent page link", driver.CSS("[data-test='tf_web_footer_evidon']")},
	{"FAQ page link", driver.CSS("[data-test='tf_web_footer_faq']")},
	{"careers page link", driver.CSS("[data-test='tf_web_footer_weRecruit']")},
	{"michelin page link", driver.CSS("[data-test='tf_web_footer_michelin']")},
}

// Footer is the site footer with its links
type Footer struct {
	env  Env
	root driver.Element
	log  logrus.FieldLogger
}

// NewFooter binds a footer to its container
func NewFooter(env Env, root driver.Element) *Footer {
	return &Footer{env: env, root: root, log: env.logger("footer")}
}

// VerifyReady checks every footer link is present
func (f *Footer) VerifyReady() error {
	if err := verify(f.root, f.log, "footer component", footerChecks); err != nil {
		return err
	}
	f.log.Debug("Footer loaded")
	return nil
}
