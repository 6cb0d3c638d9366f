package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/D-z-V/oppia/pkg/auth"
)

// RegisterRoutes wires every dashboard endpoint onto the router. jwtSecret
// signs session tokens; androidSecret guards the Android batch endpoint.
func RegisterRoutes(router *gin.Engine, jwtSecret []byte, androidSecret string) {
	router.Use(auth.SessionMiddleware(jwtSecret))

	router.GET("/opportunitiessummaryhandler/:opportunity_type", GetOpportunities)
	router.GET("/getreviewableopportunities", GetReviewableOpportunities)
	router.PUT("/pinnedopportunitysummaries", auth.RequireUser(), UpdatePinnedOpportunity)

	router.GET("/gettranslatabletexthandler", GetTranslatableTexts)
	router.GET("/machine_translated_state_texts_handler", GetMachineTranslatedStateTexts)
	router.GET("/preferredtranslationlanguage", auth.RequireUser(), GetPreferredTranslationLanguage)
	router.POST("/preferredtranslationlanguage", auth.RequireUser(), SetPreferredTranslationLanguage)

	router.GET("/usercontributionrightsdatahandler", GetUserContributionRights)
	router.GET("/retrievefeaturedtranslationlanguages", GetFeaturedTranslationLanguages)
	router.GET("/gettranslatabletopicnames", GetTranslatableTopicNames)
	router.GET("/gettranslatabletopicnamesperclassroom", GetTranslatableTopicNamesPerClassroom)

	router.GET("/contributorstatssummaries/:contribution_type/:contribution_subtype/:username", auth.RequireUser(), GetContributorStatsSummaries)
	router.GET("/contributorallstatssummaries/:username", auth.RequireUser(), GetAllContributorStatsSummaries)
	router.GET("/contributorcertificate/:username/:suggestion_type", auth.RequireUser(), GetContributorCertificate)

	router.GET("/android/activities", auth.ServiceAuthMiddleware(androidSecret), GetAndroidActivities)
}
