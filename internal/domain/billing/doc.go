// Package billing holds the rent billing domain: rent payment records, ad-hoc
// current bills, and the pure reconciliation pipeline that derives a tenant's
// pending-payment position.
//
// The pipeline has three stages, each side-effect free:
//   - schedule: expands a tenant's stay into the calendar months rent was
//     expected for
//   - matcher: pairs expected months with recorded payments, resolving
//     duplicate-month records in the tenant's favor
//   - classifier: turns matched months into a TenantReconciliation with
//     missing/partial months, amounts due and an overall status
//
// Persistence and notification concerns live outside this package.
package billing
