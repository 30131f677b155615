package models

type UserRole string
type AuthProvider string
type AuthTokenType string
type Gender string
type EducationLevel string
type ExperienceLevel string
type MaritalStatus string
type GradeType string
type Proficiency string
type LocationType string
type EmploymentType string
type ApplicationStatus string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	ProviderEmail  AuthProvider = "email"
	ProviderGoogle AuthProvider = "google"
	ProviderPhone  AuthProvider = "phone"

	TokenTypeEmailVerify    AuthTokenType = "email_verify"
	TokenTypePasswordReset  AuthTokenType = "password_reset"
	TokenTypePhoneOTP       AuthTokenType = "phone_otp"
	TokenTypeEmailChangeOTP AuthTokenType = "email_change_otp"

	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"

	EducationBelow10th    EducationLevel = "BELOW_10TH"
	EducationPass10th     EducationLevel = "PASS_10TH"
	EducationPass12th     EducationLevel = "PASS_12TH"
	EducationDiploma      EducationLevel = "DIPLOMA"
	EducationGraduate     EducationLevel = "GRADUATE"
	EducationPostGraduate EducationLevel = "POST_GRADUATE"

	ExperienceFresher    ExperienceLevel = "FRESHER"
	ExperienceMonths1to6 ExperienceLevel = "MONTHS_1_6"
	ExperienceYear1      ExperienceLevel = "YEAR_1"
	ExperienceYears2     ExperienceLevel = "YEARS_2"
	ExperienceYears3     ExperienceLevel = "YEARS_3"
	ExperienceYears4     ExperienceLevel = "YEARS_4"
	ExperienceYears5Plus ExperienceLevel = "YEARS_5_PLUS"

	MaritalSingle   MaritalStatus = "SINGLE"
	MaritalMarried  MaritalStatus = "MARRIED"
	MaritalDivorced MaritalStatus = "DIVORCED"
	MaritalWidowed  MaritalStatus = "WIDOWED"

	GradeCGPA       GradeType = "CGPA"
	GradePercentage GradeType = "PERCENTAGE"
	GradeLetter     GradeType = "GRADE"

	ProficiencyBeginner     Proficiency = "BEGINNER"
	ProficiencyIntermediate Proficiency = "INTERMEDIATE"
	ProficiencyExpert       Proficiency = "EXPERT"

	LocationRemote LocationType = "REMOTE"
	LocationOnsite LocationType = "ONSITE"
	LocationHybrid LocationType = "HYBRID"

	EmploymentFullTime   EmploymentType = "FULL_TIME"
	EmploymentPartTime   EmploymentType = "PART_TIME"
	EmploymentInternship EmploymentType = "INTERNSHIP"
	EmploymentFreelance  EmploymentType = "FREELANCE"
	EmploymentContract   EmploymentType = "CONTRACT"

	ApplicationPending            ApplicationStatus = "PENDING"
	ApplicationReviewed           ApplicationStatus = "REVIEWED"
	ApplicationShortlisted        ApplicationStatus = "SHORTLISTED"
	ApplicationInterviewScheduled ApplicationStatus = "INTERVIEW_SCHEDULED"
	ApplicationRejected           ApplicationStatus = "REJECTED"
	ApplicationHired              ApplicationStatus = "HIRED"
)

// Допустимые значения перечислений (используются валидатором)
var (
	Genders             = []Gender{GenderMale, GenderFemale, GenderOther}
	EducationLevels     = []EducationLevel{EducationBelow10th, EducationPass10th, EducationPass12th, EducationDiploma, EducationGraduate, EducationPostGraduate}
	ExperienceLevels    = []ExperienceLevel{ExperienceFresher, ExperienceMonths1to6, ExperienceYear1, ExperienceYears2, ExperienceYears3, ExperienceYears4, ExperienceYears5Plus}
	MaritalStatuses     = []MaritalStatus{MaritalSingle, MaritalMarried, MaritalDivorced, MaritalWidowed}
	GradeTypes          = []GradeType{GradeCGPA, GradePercentage, GradeLetter}
	Proficiencies       = []Proficiency{ProficiencyBeginner, ProficiencyIntermediate, ProficiencyExpert}
	LocationTypes       = []LocationType{LocationRemote, LocationOnsite, LocationHybrid}
	EmploymentTypes     = []EmploymentType{EmploymentFullTime, EmploymentPartTime, EmploymentInternship, EmploymentFreelance, EmploymentContract}
	ApplicationStatuses = []ApplicationStatus{ApplicationPending, ApplicationReviewed, ApplicationShortlisted, ApplicationInterviewScheduled, ApplicationRejected, ApplicationHired}
)
